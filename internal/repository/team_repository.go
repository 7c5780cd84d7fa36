package repository

import (
	"context"

	"github.com/arenadesk/arenadesk/model"
	"gorm.io/gorm"
)

type TeamRepository struct {
	db *gorm.DB
}

func (r *TeamRepository) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID uint) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).Preload("Players").First(&team, teamID).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) ListByCreator(ctx context.Context, creatorID uint) ([]*model.Team, error) {
	var teams []*model.Team
	err := r.db.WithContext(ctx).Preload("Players").Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&teams).Error
	return teams, err
}

// Search matches teams of the given creator whose full name or tag contains
// the keyword, case-insensitively.
func (r *TeamRepository) Search(ctx context.Context, creatorID uint, keyword string) ([]*model.Team, error) {
	var teams []*model.Team
	pattern := "%" + keyword + "%"
	err := r.db.WithContext(ctx).Preload("Players").
		Where("creator_id = ?", creatorID).
		Where("full_name LIKE ? OR tag LIKE ?", pattern, pattern).
		Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) CountByCreator(ctx context.Context, creatorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Team{}).Where("creator_id = ?", creatorID).Count(&count).Error
	return count, err
}

func (r *TeamRepository) Save(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

// ReplacePlayers swaps the team roster for the given set of players.
func (r *TeamRepository) ReplacePlayers(ctx context.Context, team *model.Team, players []model.Player) error {
	return r.db.WithContext(ctx).Model(team).Association("Players").Replace(players)
}

func (r *TeamRepository) Delete(ctx context.Context, teamID uint) (int64, error) {
	ret := r.db.WithContext(ctx).Select("Players").Delete(&model.Team{Model: gorm.Model{ID: teamID}})
	return ret.RowsAffected, ret.Error
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db}
}
