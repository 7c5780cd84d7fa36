package middlewares

import (
	"context"
	"strings"

	"github.com/arenadesk/arenadesk/model"
	"github.com/gofiber/fiber/v2"
)

const (
	userContextKey = "user"
)

type TokenValidator interface {
	Validate(token string) (uint, error)
}

type UserService interface {
	GetUserByID(ctx context.Context, userID uint) (*model.User, error)
}

// CurrentUser returns the identity resolved by RequireAuth, or nil on
// unprotected routes.
func CurrentUser(ctx *fiber.Ctx) *model.User {
	user, ok := ctx.Locals(userContextKey).(*model.User)
	if ok {
		return user
	}
	return nil
}

// RequireAuth resolves the bearer token to a live user record. The record is
// re-fetched on every request so that an approval revoked after the token was
// issued blocks access immediately.
func RequireAuth(tokens TokenValidator, userService UserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "not authorized, no token")
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := tokens.Validate(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "not authorized, token failed")
		}

		user, err := userService.GetUserByID(ctx.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "not authorized, user not found")
		}
		if !user.IsApproved() {
			return fiber.NewError(fiber.StatusForbidden, "account is not approved")
		}

		ctx.Locals(userContextKey, user)
		return ctx.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)
		if user == nil || !user.IsAdmin {
			return fiber.NewError(fiber.StatusForbidden, "access denied, admin only")
		}
		return ctx.Next()
	}
}
