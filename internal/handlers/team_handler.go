package handlers

import (
	"errors"

	"github.com/arenadesk/arenadesk/internal/middlewares"
	"github.com/arenadesk/arenadesk/internal/teams"
	"github.com/gofiber/fiber/v2"
)

type PlayerForm struct {
	Name     string `json:"name"`
	PlayerID string `json:"playerId"`
	Photo    string `json:"photo"`
}

type TeamForm struct {
	FullName string       `json:"fullName"`
	Tag      string       `json:"tag"`
	LogoURL  string       `json:"logoUrl"`
	Players  []PlayerForm `json:"players"`
}

// TeamHandler serves owner-scoped team CRUD behind RequireAuth.
type TeamHandler struct {
	teamService TeamService
}

func NewTeamHandler(teamService TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

func makePlayerOptions(forms []PlayerForm) []teams.PlayerOptions {
	if forms == nil {
		return nil
	}
	players := make([]teams.PlayerOptions, 0, len(forms))
	for _, p := range forms {
		players = append(players, teams.PlayerOptions{
			Name:     p.Name,
			PlayerID: p.PlayerID,
			Photo:    p.Photo,
		})
	}
	return players
}

func mapTeamError(err error) error {
	switch {
	case errors.Is(err, teams.ErrTeamNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Team not found")
	case errors.Is(err, teams.ErrNotTeamOwner):
		return fiber.NewError(fiber.StatusUnauthorized, "Not authorized")
	}
	return err
}

func (h *TeamHandler) PostTeam(ctx *fiber.Ctx) error {
	var form TeamForm
	if err := ctx.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if form.FullName == "" || form.Tag == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Team name and tag are required.")
	}

	user := middlewares.CurrentUser(ctx)
	team, err := h.teamService.CreateTeam(ctx.Context(), user.ID, teams.CreateTeamOptions{
		FullName: form.FullName,
		Tag:      form.Tag,
		LogoURL:  form.LogoURL,
		Players:  makePlayerOptions(form.Players),
	})
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(team)
}

func (h *TeamHandler) GetTeams(ctx *fiber.Ctx) error {
	user := middlewares.CurrentUser(ctx)
	teamList, err := h.teamService.ListTeams(ctx.Context(), user.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(teamList)
}

func (h *TeamHandler) GetSearchTeams(ctx *fiber.Ctx) error {
	user := middlewares.CurrentUser(ctx)
	teamList, err := h.teamService.SearchTeams(ctx.Context(), user.ID, ctx.Query("keyword"))
	if err != nil {
		return err
	}
	return ctx.JSON(teamList)
}

func (h *TeamHandler) GetTeam(ctx *fiber.Ctx) error {
	teamID, err := parseResourceID(ctx)
	if err != nil {
		return err
	}
	user := middlewares.CurrentUser(ctx)
	team, err := h.teamService.GetTeam(ctx.Context(), user.ID, teamID)
	if err != nil {
		return mapTeamError(err)
	}
	return ctx.JSON(team)
}

func (h *TeamHandler) PutTeam(ctx *fiber.Ctx) error {
	teamID, err := parseResourceID(ctx)
	if err != nil {
		return err
	}
	var form TeamForm
	if err := ctx.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user := middlewares.CurrentUser(ctx)
	team, err := h.teamService.UpdateTeam(ctx.Context(), user.ID, teamID, teams.UpdateTeamOptions{
		FullName: form.FullName,
		Tag:      form.Tag,
		LogoURL:  form.LogoURL,
		Players:  makePlayerOptions(form.Players),
	})
	if err != nil {
		return mapTeamError(err)
	}
	return ctx.JSON(team)
}

func (h *TeamHandler) DeleteTeam(ctx *fiber.Ctx) error {
	teamID, err := parseResourceID(ctx)
	if err != nil {
		return err
	}
	user := middlewares.CurrentUser(ctx)
	if err := h.teamService.DeleteTeam(ctx.Context(), user.ID, teamID); err != nil {
		return mapTeamError(err)
	}
	return ctx.JSON(fiber.Map{"message": "Team removed"})
}
