package teams

import (
	"context"
	"errors"

	"github.com/arenadesk/arenadesk/model"
	"gorm.io/gorm"
)

type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	GetByID(ctx context.Context, teamID uint) (*model.Team, error)
	ListByCreator(ctx context.Context, creatorID uint) ([]*model.Team, error)
	Search(ctx context.Context, creatorID uint, keyword string) ([]*model.Team, error)
	CountByCreator(ctx context.Context, creatorID uint) (int64, error)
	Save(ctx context.Context, team *model.Team) error
	ReplacePlayers(ctx context.Context, team *model.Team, players []model.Player) error
	Delete(ctx context.Context, teamID uint) (int64, error)
}

type PlayerOptions struct {
	Name     string
	PlayerID string
	Photo    string
}

type CreateTeamOptions struct {
	FullName string
	Tag      string
	LogoURL  string
	Players  []PlayerOptions
}

// UpdateTeamOptions carries partial updates, zero values leave the stored
// field untouched. A nil Players slice keeps the roster, a non-nil one
// replaces it.
type UpdateTeamOptions struct {
	FullName string
	Tag      string
	LogoURL  string
	Players  []PlayerOptions
}

type TeamService struct {
	teamRepo TeamRepository
}

func makePlayers(opts []PlayerOptions) []model.Player {
	players := make([]model.Player, 0, len(opts))
	for _, p := range opts {
		players = append(players, model.Player{
			Name:     p.Name,
			PlayerID: p.PlayerID,
			Photo:    p.Photo,
		})
	}
	return players
}

func (s *TeamService) CreateTeam(ctx context.Context, creatorID uint, opts CreateTeamOptions) (*model.Team, error) {
	team := model.Team{
		FullName:  opts.FullName,
		Tag:       opts.Tag,
		LogoURL:   opts.LogoURL,
		Players:   makePlayers(opts.Players),
		CreatorID: creatorID,
	}
	team.ID = model.GenerateID()
	if err := s.teamRepo.Create(ctx, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamService) ListTeams(ctx context.Context, creatorID uint) ([]*model.Team, error) {
	return s.teamRepo.ListByCreator(ctx, creatorID)
}

func (s *TeamService) SearchTeams(ctx context.Context, creatorID uint, keyword string) ([]*model.Team, error) {
	if keyword == "" {
		return s.teamRepo.ListByCreator(ctx, creatorID)
	}
	return s.teamRepo.Search(ctx, creatorID, keyword)
}

// GetTeam fetches a team and enforces the ownership scope.
func (s *TeamService) GetTeam(ctx context.Context, creatorID uint, teamID uint) (*model.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTeamNotFound
	} else if err != nil {
		return nil, err
	}
	if team.CreatorID != creatorID {
		return nil, ErrNotTeamOwner
	}
	return team, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, creatorID uint, teamID uint, opts UpdateTeamOptions) (*model.Team, error) {
	team, err := s.GetTeam(ctx, creatorID, teamID)
	if err != nil {
		return nil, err
	}

	if opts.FullName != "" {
		team.FullName = opts.FullName
	}
	if opts.Tag != "" {
		team.Tag = opts.Tag
	}
	if opts.LogoURL != "" {
		team.LogoURL = opts.LogoURL
	}
	if err := s.teamRepo.Save(ctx, team); err != nil {
		return nil, err
	}

	if opts.Players != nil {
		players := makePlayers(opts.Players)
		if err := s.teamRepo.ReplacePlayers(ctx, team, players); err != nil {
			return nil, err
		}
		team.Players = players
	}
	return team, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, creatorID uint, teamID uint) error {
	team, err := s.GetTeam(ctx, creatorID, teamID)
	if err != nil {
		return err
	}
	_, err = s.teamRepo.Delete(ctx, team.ID)
	return err
}

func (s *TeamService) CountTeams(ctx context.Context, creatorID uint) (int64, error) {
	return s.teamRepo.CountByCreator(ctx, creatorID)
}

func NewTeamService(teamRepo TeamRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
	}
}
