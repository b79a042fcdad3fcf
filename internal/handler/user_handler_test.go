package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "taskpad/internal/errors"
	"taskpad/internal/model"
	"taskpad/internal/service"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in service.RegisterUserInput) (*service.RegistrationResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RegistrationResult), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func jsonBody(s string) *strings.Reader { return strings.NewReader(s) }

func postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_RegisterUser_Created(t *testing.T) {
	mockSvc := new(MockUserService)
	id := uuid.New()
	mockSvc.On("Register", mock.Anything, mock.MatchedBy(func(in service.RegisterUserInput) bool {
		// email is lifted out of the body; the rest passes through verbatim
		return in.Email == "a@x.com" && in.Attributes["name"] == "Ann"
	})).Return(&service.RegistrationResult{InsertedID: &id}, nil)

	c, rec := postJSON("/api/users", `{"email":"a@x.com","name":"Ann"}`)
	h := NewUserHandler(mockSvc)

	assert.NoError(t, h.RegisterUser(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp RegisterUserResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.InsertedID)
	assert.Equal(t, id.String(), *resp.InsertedID)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_RegisterUser_AlreadyExists(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("Register", mock.Anything, mock.Anything).
		Return(&service.RegistrationResult{
			AlreadyExists: true,
			User:          &model.User{ID: uuid.New(), Email: "a@x.com"},
		}, nil)

	c, rec := postJSON("/api/users", `{"email":"a@x.com"}`)
	h := NewUserHandler(mockSvc)

	assert.NoError(t, h.RegisterUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// insertedId must be literal null, not omitted
	body := map[string]json.RawMessage{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "null", string(body["insertedId"]))

	var resp RegisterUserResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "already exists", resp.Message)
	assert.Nil(t, resp.InsertedID)
}

func TestUserHandler_RegisterUser_MissingEmail(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("Register", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("email"))

	c, _ := postJSON("/api/users", `{"name":"Ann"}`)
	h := NewUserHandler(mockSvc)

	err := h.RegisterUser(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	resp, ok := httpErr.Message.(apperrors.ErrorResponse)
	assert.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.Contains(t, resp.Error, "email")
}

func TestUserHandler_GetUser_InvalidID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	h := NewUserHandler(new(MockUserService))
	err := h.GetUser(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
