package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arenadesk/arenadesk/model"
	"gorm.io/gorm"
)

type fakeEventRepo struct {
	events map[uint]*model.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uint]*model.Event)}
}

func (r *fakeEventRepo) Create(ctx context.Context, event *model.Event) error {
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, eventID uint) (*model.Event, error) {
	event, ok := r.events[eventID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *event
	return &clone, nil
}

func (r *fakeEventRepo) ListByCreator(ctx context.Context, creatorID uint) ([]*model.Event, error) {
	var list []*model.Event
	for _, event := range r.events {
		if event.CreatorID == creatorID {
			clone := *event
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *fakeEventRepo) CountByCreator(ctx context.Context, creatorID uint) (int64, error) {
	list, _ := r.ListByCreator(ctx, creatorID)
	return int64(len(list)), nil
}

func (r *fakeEventRepo) Save(ctx context.Context, event *model.Event) error {
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, eventID uint) (int64, error) {
	if _, ok := r.events[eventID]; !ok {
		return 0, nil
	}
	delete(r.events, eventID)
	return 1, nil
}

func TestCreateAndGetEvent(t *testing.T) {
	service := NewEventService(newFakeEventRepo())
	ctx := context.Background()

	created, err := service.CreateEvent(ctx, 1, CreateEventOptions{
		Name:         "Summer Cup",
		Date:         time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PrimaryColor: "#ff0000",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Status != model.EventStatusUpcoming {
		t.Errorf("expected upcoming status, got %q", created.Status)
	}

	got, err := service.GetEvent(ctx, 1, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Summer Cup" {
		t.Errorf("unexpected name %q", got.Name)
	}
}

func TestGetEventOwnership(t *testing.T) {
	service := NewEventService(newFakeEventRepo())
	ctx := context.Background()

	created, err := service.CreateEvent(ctx, 1, CreateEventOptions{Name: "Summer Cup"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := service.GetEvent(ctx, 2, created.ID); !errors.Is(err, ErrNotEventOwner) {
		t.Fatalf("expected ErrNotEventOwner, got %v", err)
	}
	if _, err := service.GetEvent(ctx, 1, created.ID+1); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestUpdateEventPartial(t *testing.T) {
	service := NewEventService(newFakeEventRepo())
	ctx := context.Background()

	created, err := service.CreateEvent(ctx, 1, CreateEventOptions{
		Name:           "Summer Cup",
		PrimaryColor:   "#ff0000",
		SecondaryColor: "#00ff00",
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := service.UpdateEvent(ctx, 1, created.ID, UpdateEventOptions{
		Name:   "Winter Cup",
		Status: model.EventStatusOngoing,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Winter Cup" {
		t.Errorf("expected updated name, got %q", updated.Name)
	}
	if updated.Status != model.EventStatusOngoing {
		t.Errorf("expected ongoing status, got %q", updated.Status)
	}
	// fields omitted from the update keep their values
	if updated.PrimaryColor != "#ff0000" || updated.SecondaryColor != "#00ff00" {
		t.Errorf("expected colors to be preserved, got %q/%q", updated.PrimaryColor, updated.SecondaryColor)
	}
}

func TestDeleteEvent(t *testing.T) {
	service := NewEventService(newFakeEventRepo())
	ctx := context.Background()

	created, err := service.CreateEvent(ctx, 1, CreateEventOptions{Name: "Summer Cup"})
	if err != nil {
		t.Fatal(err)
	}
	if err := service.DeleteEvent(ctx, 2, created.ID); !errors.Is(err, ErrNotEventOwner) {
		t.Fatalf("expected ErrNotEventOwner, got %v", err)
	}
	if err := service.DeleteEvent(ctx, 1, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := service.GetEvent(ctx, 1, created.ID); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound after delete, got %v", err)
	}

	count, err := service.CountEvents(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected 0 events, got %d", count)
	}
}
