package handlers

import (
	"context"
	"time"

	"github.com/arenadesk/arenadesk/internal/events"
	"github.com/arenadesk/arenadesk/internal/teams"
	"github.com/arenadesk/arenadesk/internal/users"
	"github.com/arenadesk/arenadesk/model"
)

type UserService interface {
	RegisterUser(ctx context.Context, opts users.RegisterOptions) (*model.User, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) (*model.User, error)
	ApproveUser(ctx context.Context, userID uint) (*model.User, error)
	RejectUser(ctx context.Context, userID uint) (*model.User, error)
	GetUserByID(ctx context.Context, userID uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	ListPendingUsers(ctx context.Context) ([]*model.User, error)
	DeleteUser(ctx context.Context, userID uint) error
}

type AuthenticateService interface {
	PasswordLogin(ctx context.Context, email string, password string) (*model.User, string, error)
}

type EventService interface {
	CreateEvent(ctx context.Context, creatorID uint, opts events.CreateEventOptions) (*model.Event, error)
	ListEvents(ctx context.Context, creatorID uint) ([]*model.Event, error)
	GetEvent(ctx context.Context, creatorID uint, eventID uint) (*model.Event, error)
	UpdateEvent(ctx context.Context, creatorID uint, eventID uint, opts events.UpdateEventOptions) (*model.Event, error)
	DeleteEvent(ctx context.Context, creatorID uint, eventID uint) error
	CountEvents(ctx context.Context, creatorID uint) (int64, error)
}

type TeamService interface {
	CreateTeam(ctx context.Context, creatorID uint, opts teams.CreateTeamOptions) (*model.Team, error)
	ListTeams(ctx context.Context, creatorID uint) ([]*model.Team, error)
	SearchTeams(ctx context.Context, creatorID uint, keyword string) ([]*model.Team, error)
	GetTeam(ctx context.Context, creatorID uint, teamID uint) (*model.Team, error)
	UpdateTeam(ctx context.Context, creatorID uint, teamID uint, opts teams.UpdateTeamOptions) (*model.Team, error)
	DeleteTeam(ctx context.Context, creatorID uint, teamID uint) error
	CountTeams(ctx context.Context, creatorID uint) (int64, error)
}

var _ UserService = (*users.UserService)(nil)
var _ EventService = (*events.EventService)(nil)
var _ TeamService = (*teams.TeamService)(nil)

func userSummary(user *model.User) map[string]interface{} {
	return map[string]interface{}{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"status":        user.Status,
		"isAdmin":       user.IsAdmin,
		"emailVerified": user.EmailVerified,
		"createdAt":     user.CreatedAt.Format(time.RFC3339),
		"updatedAt":     user.UpdatedAt.Format(time.RFC3339),
	}
}
