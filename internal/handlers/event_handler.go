package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/arenadesk/arenadesk/internal/events"
	"github.com/arenadesk/arenadesk/internal/middlewares"
	"github.com/gofiber/fiber/v2"
)

type CreateEventForm struct {
	Name           string    `json:"name"`
	LogoURL        string    `json:"logoUrl"`
	Date           time.Time `json:"date"`
	PrimaryColor   string    `json:"primaryColor"`
	SecondaryColor string    `json:"secondaryColor"`
}

type UpdateEventForm struct {
	Name           string     `json:"name"`
	LogoURL        string     `json:"logoUrl"`
	Date           *time.Time `json:"date"`
	PrimaryColor   string     `json:"primaryColor"`
	SecondaryColor string     `json:"secondaryColor"`
	Status         string     `json:"status"`
}

// EventHandler serves owner-scoped event CRUD behind RequireAuth.
type EventHandler struct {
	eventService EventService
}

func NewEventHandler(eventService EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

func parseResourceID(ctx *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func mapEventError(err error) error {
	switch {
	case errors.Is(err, events.ErrEventNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Event not found")
	case errors.Is(err, events.ErrNotEventOwner):
		return fiber.NewError(fiber.StatusUnauthorized, "Not authorized")
	}
	return err
}

func (h *EventHandler) PostEvent(ctx *fiber.Ctx) error {
	var form CreateEventForm
	if err := ctx.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if form.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Event name is required.")
	}
	if form.Date.IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "Event date is required.")
	}

	user := middlewares.CurrentUser(ctx)
	event, err := h.eventService.CreateEvent(ctx.Context(), user.ID, events.CreateEventOptions{
		Name:           form.Name,
		LogoURL:        form.LogoURL,
		Date:           form.Date,
		PrimaryColor:   form.PrimaryColor,
		SecondaryColor: form.SecondaryColor,
	})
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(event)
}

func (h *EventHandler) GetEvents(ctx *fiber.Ctx) error {
	user := middlewares.CurrentUser(ctx)
	eventList, err := h.eventService.ListEvents(ctx.Context(), user.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(eventList)
}

func (h *EventHandler) GetEvent(ctx *fiber.Ctx) error {
	eventID, err := parseResourceID(ctx)
	if err != nil {
		return err
	}
	user := middlewares.CurrentUser(ctx)
	event, err := h.eventService.GetEvent(ctx.Context(), user.ID, eventID)
	if err != nil {
		return mapEventError(err)
	}
	return ctx.JSON(event)
}

func (h *EventHandler) PutEvent(ctx *fiber.Ctx) error {
	eventID, err := parseResourceID(ctx)
	if err != nil {
		return err
	}
	var form UpdateEventForm
	if err := ctx.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if form.Status != "" {
		if err := validateEventStatus(form.Status); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	user := middlewares.CurrentUser(ctx)
	event, err := h.eventService.UpdateEvent(ctx.Context(), user.ID, eventID, events.UpdateEventOptions{
		Name:           form.Name,
		LogoURL:        form.LogoURL,
		Date:           form.Date,
		PrimaryColor:   form.PrimaryColor,
		SecondaryColor: form.SecondaryColor,
		Status:         form.Status,
	})
	if err != nil {
		return mapEventError(err)
	}
	return ctx.JSON(event)
}

func (h *EventHandler) DeleteEvent(ctx *fiber.Ctx) error {
	eventID, err := parseResourceID(ctx)
	if err != nil {
		return err
	}
	user := middlewares.CurrentUser(ctx)
	if err := h.eventService.DeleteEvent(ctx.Context(), user.ID, eventID); err != nil {
		return mapEventError(err)
	}
	return ctx.JSON(fiber.Map{"message": "Event removed"})
}
