package events

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotEventOwner = errors.New("not the event owner")
)
