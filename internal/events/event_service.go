package events

import (
	"context"
	"errors"
	"time"

	"github.com/arenadesk/arenadesk/model"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, eventID uint) (*model.Event, error)
	ListByCreator(ctx context.Context, creatorID uint) ([]*model.Event, error)
	CountByCreator(ctx context.Context, creatorID uint) (int64, error)
	Save(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, eventID uint) (int64, error)
}

type CreateEventOptions struct {
	Name           string
	LogoURL        string
	Date           time.Time
	PrimaryColor   string
	SecondaryColor string
}

// UpdateEventOptions carries partial updates, zero values leave the stored
// field untouched.
type UpdateEventOptions struct {
	Name           string
	LogoURL        string
	Date           *time.Time
	PrimaryColor   string
	SecondaryColor string
	Status         string
}

type EventService struct {
	eventRepo EventRepository
}

func (s *EventService) CreateEvent(ctx context.Context, creatorID uint, opts CreateEventOptions) (*model.Event, error) {
	event := model.Event{
		Name:           opts.Name,
		LogoURL:        opts.LogoURL,
		Date:           opts.Date,
		PrimaryColor:   opts.PrimaryColor,
		SecondaryColor: opts.SecondaryColor,
		Status:         model.EventStatusUpcoming,
		CreatorID:      creatorID,
	}
	event.ID = model.GenerateID()
	if err := s.eventRepo.Create(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) ListEvents(ctx context.Context, creatorID uint) ([]*model.Event, error) {
	return s.eventRepo.ListByCreator(ctx, creatorID)
}

// GetEvent fetches an event and enforces the ownership scope.
func (s *EventService) GetEvent(ctx context.Context, creatorID uint, eventID uint) (*model.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	} else if err != nil {
		return nil, err
	}
	if event.CreatorID != creatorID {
		return nil, ErrNotEventOwner
	}
	return event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, creatorID uint, eventID uint, opts UpdateEventOptions) (*model.Event, error) {
	event, err := s.GetEvent(ctx, creatorID, eventID)
	if err != nil {
		return nil, err
	}

	if opts.Name != "" {
		event.Name = opts.Name
	}
	if opts.LogoURL != "" {
		event.LogoURL = opts.LogoURL
	}
	if opts.Date != nil {
		event.Date = *opts.Date
	}
	if opts.PrimaryColor != "" {
		event.PrimaryColor = opts.PrimaryColor
	}
	if opts.SecondaryColor != "" {
		event.SecondaryColor = opts.SecondaryColor
	}
	if opts.Status != "" {
		event.Status = opts.Status
	}

	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, creatorID uint, eventID uint) error {
	event, err := s.GetEvent(ctx, creatorID, eventID)
	if err != nil {
		return err
	}
	_, err = s.eventRepo.Delete(ctx, event.ID)
	return err
}

func (s *EventService) CountEvents(ctx context.Context, creatorID uint) (int64, error) {
	return s.eventRepo.CountByCreator(ctx, creatorID)
}

func NewEventService(eventRepo EventRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
	}
}
