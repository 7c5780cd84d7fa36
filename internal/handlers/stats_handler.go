package handlers

import (
	"github.com/arenadesk/arenadesk/internal/middlewares"
	"github.com/gofiber/fiber/v2"
)

// StatsHandler reports per-user usage counters.
type StatsHandler struct {
	eventService EventService
	teamService  TeamService
}

func NewStatsHandler(eventService EventService, teamService TeamService) *StatsHandler {
	return &StatsHandler{
		eventService: eventService,
		teamService:  teamService,
	}
}

func (h *StatsHandler) GetStats(ctx *fiber.Ctx) error {
	user := middlewares.CurrentUser(ctx)
	totalTeams, err := h.teamService.CountTeams(ctx.Context(), user.ID)
	if err != nil {
		return err
	}
	totalEvents, err := h.eventService.CountEvents(ctx.Context(), user.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"totalTeamsCreated": totalTeams,
		"totalEventsHosted": totalEvents,
	})
}
