package handlers

import (
	"errors"
	"strconv"

	"github.com/arenadesk/arenadesk/internal/users"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the admin-only user management routes. Routing must
// place it behind both RequireAuth and RequireAdmin.
type AdminHandler struct {
	userService UserService
}

func NewAdminHandler(userService UserService) *AdminHandler {
	return &AdminHandler{
		userService: userService,
	}
}

func parseUserID(ctx *fiber.Ctx) (uint, error) {
	userID, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}
	return uint(userID), nil
}

func (h *AdminHandler) GetUsers(ctx *fiber.Ctx) error {
	userList, err := h.userService.ListUsers(ctx.Context())
	if err != nil {
		return err
	}
	summaries := make([]map[string]interface{}, 0, len(userList))
	for _, user := range userList {
		summaries = append(summaries, userSummary(user))
	}
	return ctx.JSON(summaries)
}

func (h *AdminHandler) GetPendingUsers(ctx *fiber.Ctx) error {
	userList, err := h.userService.ListPendingUsers(ctx.Context())
	if err != nil {
		return err
	}
	summaries := make([]map[string]interface{}, 0, len(userList))
	for _, user := range userList {
		summaries = append(summaries, userSummary(user))
	}
	return ctx.JSON(summaries)
}

func (h *AdminHandler) PutApproveUser(ctx *fiber.Ctx) error {
	userID, err := parseUserID(ctx)
	if err != nil {
		return err
	}
	user, err := h.userService.ApproveUser(ctx.Context(), userID)
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	case errors.Is(err, users.ErrUserNotPending):
		return fiber.NewError(fiber.StatusConflict, "User status already finalized")
	case err != nil:
		return err
	}
	return ctx.JSON(fiber.Map{
		"message": "User approved successfully",
		"user":    userSummary(user),
	})
}

func (h *AdminHandler) PutRejectUser(ctx *fiber.Ctx) error {
	userID, err := parseUserID(ctx)
	if err != nil {
		return err
	}
	user, err := h.userService.RejectUser(ctx.Context(), userID)
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	case errors.Is(err, users.ErrUserNotPending):
		return fiber.NewError(fiber.StatusConflict, "User status already finalized")
	case err != nil:
		return err
	}
	return ctx.JSON(fiber.Map{
		"message": "User rejected successfully",
		"user":    userSummary(user),
	})
}

func (h *AdminHandler) DeleteUser(ctx *fiber.Ctx) error {
	userID, err := parseUserID(ctx)
	if err != nil {
		return err
	}
	err = h.userService.DeleteUser(ctx.Context(), userID)
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	case err != nil:
		return err
	}
	return ctx.JSON(fiber.Map{"message": "User deleted successfully"})
}
