package handlers

import (
	"errors"
	"net/mail"

	"github.com/arenadesk/arenadesk/model"
)

func validateName(name string) error {
	if name == "" {
		return errors.New("Name is required.")
	}
	if len(name) > 64 {
		return errors.New("Name must be less than 64 characters.")
	}
	return nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("Invalid email address.")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("Password must be at least 6 characters.")
	}
	return nil
}

func validateEventStatus(status string) error {
	switch status {
	case model.EventStatusUpcoming, model.EventStatusOngoing, model.EventStatusCompleted:
		return nil
	}
	return errors.New("Invalid event status.")
}
