package repository

import (
	"context"

	"github.com/arenadesk/arenadesk/model"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *EventRepository) GetByID(ctx context.Context, eventID uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).First(&event, eventID).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) ListByCreator(ctx context.Context, creatorID uint) ([]*model.Event, error) {
	var events []*model.Event
	err := r.db.WithContext(ctx).Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&events).Error
	return events, err
}

func (r *EventRepository) CountByCreator(ctx context.Context, creatorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Event{}).Where("creator_id = ?", creatorID).Count(&count).Error
	return count, err
}

func (r *EventRepository) Save(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *EventRepository) Delete(ctx context.Context, eventID uint) (int64, error) {
	ret := r.db.WithContext(ctx).Delete(&model.Event{}, eventID)
	return ret.RowsAffected, ret.Error
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db}
}
