package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"taskpad/internal/errors"
	"taskpad/internal/service"
)

// UserHandler handles user registration endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterUserResponse represents a registration response. InsertedID is
// null when the email was already registered.
type RegisterUserResponse struct {
	Message    string  `json:"message,omitempty"`
	InsertedID *string `json:"insertedId"`
}

// RegisterUser godoc
// @Summary Register a user (idempotent by email)
// @Tags users
// @Accept json
// @Produce json
// @Param user body map[string]interface{} true "Registration payload, email required; other fields stored verbatim"
// @Success 201 {object} RegisterUserResponse
// @Success 200 {object} RegisterUserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) RegisterUser(c echo.Context) error {
	body := map[string]interface{}{}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	email, _ := body["email"].(string)
	delete(body, "email")

	result, err := h.svc.Register(c.Request().Context(), service.RegisterUserInput{
		Email:      email,
		Attributes: body,
	})
	if err != nil {
		return h.fail(c, err)
	}

	if result.AlreadyExists {
		return c.JSON(http.StatusOK, RegisterUserResponse{
			Message:    "already exists",
			InsertedID: nil,
		})
	}

	id := result.InsertedID.String()
	return c.JSON(http.StatusCreated, RegisterUserResponse{InsertedID: &id})
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}

	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) fail(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
