package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/arenadesk/arenadesk/internal/auth"
	"github.com/arenadesk/arenadesk/internal/mail"
	"github.com/arenadesk/arenadesk/internal/middlewares"
	"github.com/arenadesk/arenadesk/internal/users"
	"github.com/arenadesk/arenadesk/model"
	"github.com/gofiber/fiber/v2"
)

var (
	MsgEmailRegistered    = "User already exists"
	MsgRegistered         = "Registration successful. Please verify your email and wait for admin approval."
	MsgEmailVerified      = "Email verified successfully! Your account is now pending admin approval."
	MsgVerificationSent   = "Verification email sent successfully"
	MsgEmailNotVerified   = "Please verify your email address before logging in."
	MsgPendingApproval    = "Your account is pending admin approval. Please wait for approval."
	MsgAccountRejected    = "Your account has been rejected. Please contact support."
	MsgInvalidCredentials = "Invalid email or password"
)

type RegisterForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResendVerificationForm struct {
	Email string `json:"email"`
}

// AuthHandler serves registration, login, email verification and profile.
type AuthHandler struct {
	userService UserService
	authService AuthenticateService
	mailSender  mail.MailSender
	baseURL     string
}

// NewAuthHandler returns a new instance of AuthHandler. A nil mailSender
// makes the handler echo verification links in responses for out-of-band
// delivery, which is a development convenience only.
func NewAuthHandler(userService UserService, authService AuthenticateService, mailSender mail.MailSender, baseURL string) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
		mailSender:  mailSender,
		baseURL:     baseURL,
	}
}

func (h *AuthHandler) verificationLink(token string) string {
	return fmt.Sprintf("%s/api/auth/verify-email/%s", h.baseURL, token)
}

// deliverVerification sends the verification link by email when a sender is
// configured, otherwise it attaches the link to the response body.
func (h *AuthHandler) deliverVerification(user *model.User, resp fiber.Map) {
	if user.VerificationToken == nil {
		return
	}
	link := h.verificationLink(*user.VerificationToken)
	if h.mailSender == nil {
		resp["verificationLink"] = link
		return
	}
	if err := mail.SendVerificationEmail(h.mailSender, user.Email, user.Name, link); err != nil {
		slog.Error("Failed to send verification email", "email", user.Email, "error", err)
	}
}

func (h *AuthHandler) PostRegister(ctx *fiber.Ctx) error {
	var form RegisterForm
	if err := ctx.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validateName(form.Name); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validateEmail(form.Email); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validatePassword(form.Password); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user, err := h.userService.RegisterUser(ctx.Context(), users.RegisterOptions{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if errors.Is(err, users.ErrEmailRegistered) {
		return fiber.NewError(fiber.StatusBadRequest, MsgEmailRegistered)
	} else if err != nil {
		return err
	}

	resp := fiber.Map(userSummary(user))
	resp["message"] = MsgRegistered
	h.deliverVerification(user, resp)
	return ctx.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) PostLogin(ctx *fiber.Ctx) error {
	var form LoginForm
	if err := ctx.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, token, err := h.authService.PasswordLogin(ctx.Context(), form.Email, form.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, MsgInvalidCredentials)
	case errors.Is(err, auth.ErrEmailNotVerified):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message":                   MsgEmailNotVerified,
			"requiresEmailVerification": true,
		})
	case errors.Is(err, auth.ErrPendingApproval):
		return fiber.NewError(fiber.StatusForbidden, MsgPendingApproval)
	case errors.Is(err, auth.ErrAccountRejected):
		return fiber.NewError(fiber.StatusForbidden, MsgAccountRejected)
	case errors.Is(err, auth.ErrTooManyAttempts):
		return fiber.NewError(fiber.StatusTooManyRequests, err.Error())
	case err != nil:
		return err
	}

	resp := fiber.Map(userSummary(user))
	resp["token"] = token
	return ctx.JSON(resp)
}

func (h *AuthHandler) GetVerifyEmail(ctx *fiber.Ctx) error {
	token := ctx.Params("token")
	err := h.userService.VerifyEmail(ctx.Context(), token)
	switch {
	case errors.Is(err, users.ErrInvalidVerificationToken):
		return fiber.NewError(fiber.StatusBadRequest, "Invalid or expired verification token")
	case errors.Is(err, users.ErrVerificationTokenExpired):
		return fiber.NewError(fiber.StatusBadRequest, "Verification token has expired. Please request a new one.")
	case err != nil:
		return err
	}
	return ctx.JSON(fiber.Map{"message": MsgEmailVerified})
}

func (h *AuthHandler) PostResendVerification(ctx *fiber.Ctx) error {
	var form ResendVerificationForm
	if err := ctx.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.ResendVerification(ctx.Context(), form.Email)
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	case errors.Is(err, users.ErrEmailAlreadyVerified):
		return fiber.NewError(fiber.StatusBadRequest, "Email already verified")
	case err != nil:
		return err
	}

	resp := fiber.Map{"message": MsgVerificationSent}
	h.deliverVerification(user, resp)
	return ctx.JSON(resp)
}

func (h *AuthHandler) GetProfile(ctx *fiber.Ctx) error {
	user := middlewares.CurrentUser(ctx)
	if user == nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	return ctx.JSON(userSummary(user))
}
