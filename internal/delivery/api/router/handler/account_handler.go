// Package handler contains the HTTP handlers for the application.
package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"accounts/internal/delivery/api/response"
	deliverycontext "accounts/internal/delivery/context"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HeaderPassword carries the caller's plaintext password on every credentialed request.
const HeaderPassword = "Password"

const homepageText = "This is the homepage of the accounts service."

// registerRequest is the body of both registration endpoints.
// Age stays untyped so a JSON number and a string are both kept as sent.
type registerRequest struct {
	Email    string `json:"email" validate:"required"`
	Age      any    `json:"age"`
	Password string `json:"password" validate:"required"`
}

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Home serves the plain-text homepage.
func Home(c echo.Context) error {
	return c.String(http.StatusOK, homepageText)
}

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// RegisterForm handles registration submitted as an HTML form.
func (h *AccountHandler) RegisterForm(c echo.Context) error {
	req := &registerRequest{
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}
	if age := c.FormValue("age"); age != "" {
		req.Age = age
	}

	return h.register(c, req)
}

// AddUser handles registration submitted as JSON.
func (h *AccountHandler) AddUser(c echo.Context) error {
	req := &registerRequest{}
	if err := decodeJSONBody(c, req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	return h.register(c, req)
}

func (h *AccountHandler) register(c echo.Context, req *registerRequest) error {
	if err := c.Validate(req); err != nil {
		return domainerrors.ErrValidationFailed
	}
	switch req.Age.(type) {
	case nil, string, json.Number:
	default:
		return domainerrors.ErrValidationFailed.WithDetails("age must be a string or a number")
	}
	deliverycontext.AttachAccount(c, req.Email)

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    req.Email,
		Age:      req.Age,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusCreated, "User registered successfully!", output.Profile)
}

// GetUser returns the caller's own record.
func (h *AccountHandler) GetUser(c echo.Context) error {
	email := targetAccount(c)
	output, err := h.uc.GetAccount(c.Request().Context(), email, passwordHeader(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output.Profile)
}

// UpdateUser merges a JSON object into the caller's own record.
func (h *AccountHandler) UpdateUser(c echo.Context) error {
	email := targetAccount(c)

	// An unreadable body reaches the use case as a nil patch, so the
	// credentials are still checked first.
	var patch map[string]any
	if err := decodeJSONBody(c, &patch); err != nil {
		patch = nil
	}

	output, err := h.uc.UpdateAccount(c.Request().Context(), &usecase.UpdateAccountInput{
		Email:    email,
		Password: passwordHeader(c),
		Patch:    patch,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "User updated successfully!", output.Profile)
}

// DeleteUser removes the caller's own record.
func (h *AccountHandler) DeleteUser(c echo.Context) error {
	email := targetAccount(c)
	if err := h.uc.DeleteAccount(c.Request().Context(), email, passwordHeader(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "User deleted successfully!", nil)
}

// targetAccount reads the :email path parameter, decoded exactly once, and
// tags the request logger with it. Echo routes on URL.RawPath when it is set,
// so only then is the parameter still escaped.
func targetAccount(c echo.Context) string {
	email := c.Param("email")
	if c.Request().URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(email); err == nil {
			email = unescaped
		}
	}
	deliverycontext.AttachAccount(c, email)

	return email
}

func passwordHeader(c echo.Context) string {
	return c.Request().Header.Get(HeaderPassword)
}

// decodeJSONBody reads exactly one JSON value, keeping numbers as json.Number.
func decodeJSONBody(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.UseNumber()

	if err := decoder.Decode(target); err != nil {
		return errors.WithStack(err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}

	return nil
}
