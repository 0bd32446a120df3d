package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/welldanyogia/recipe-app-api/internal/auth"
	apperrors "github.com/welldanyogia/recipe-app-api/internal/errors"
	"github.com/welldanyogia/recipe-app-api/internal/logger"
	"github.com/welldanyogia/recipe-app-api/internal/models"
	"github.com/welldanyogia/recipe-app-api/tests/fixtures"
	"github.com/welldanyogia/recipe-app-api/tests/mocks"
)

type authFixture struct {
	tokens *auth.TokenService
	users  *mocks.MockUserRepository
	logs   *bytes.Buffer
	mw     echo.MiddlewareFunc
}

func newAuthFixture(t *testing.T) *authFixture {
	tokens, err := auth.NewTokenService("middleware-test-secret", time.Hour)
	require.NoError(t, err)

	var buf bytes.Buffer
	users := new(mocks.MockUserRepository)
	sec := logger.NewSecurityLoggerWithHandler(slog.NewJSONHandler(&buf, nil))

	return &authFixture{
		tokens: tokens,
		users:  users,
		logs:   &buf,
		mw:     TokenAuth(tokens, users, sec),
	}
}

func (f *authFixture) serve(header string) (*httptest.ResponseRecorder, *models.User) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/recipe/tags", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *models.User
	handler := f.mw(func(c echo.Context) error {
		seen, _ = CurrentUser(c)
		return c.String(http.StatusOK, "success")
	})
	_ = handler(c)
	return rec, seen
}

func TestTokenAuth_MissingHeader(t *testing.T) {
	f := newAuthFixture(t)

	rec, seen := f.serve("")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgMissingCredentials)
	assert.Nil(t, seen)
	assert.Contains(t, f.logs.String(), "auth_failure")
	f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestTokenAuth_MalformedHeader(t *testing.T) {
	f := newAuthFixture(t)

	for _, header := range []string{"Bearer", "Basic dXNlcjpwYXNz", "Bearer    "} {
		rec, _ := f.serve(header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestTokenAuth_InvalidToken(t *testing.T) {
	f := newAuthFixture(t)

	rec, _ := f.serve("Bearer not-a-jwt")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgInvalidToken)
	assert.Contains(t, f.logs.String(), "invalid_token")
	assert.NotContains(t, f.logs.String(), "not-a-jwt")
}

func TestTokenAuth_TokenFromOtherSecret(t *testing.T) {
	f := newAuthFixture(t)
	other, err := auth.NewTokenService("another-secret", time.Hour)
	require.NoError(t, err)
	token, err := other.Generate(1, "test@example.com")
	require.NoError(t, err)

	rec, _ := f.serve("Bearer " + token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenAuth_ValidToken_SetsUser(t *testing.T) {
	f := newAuthFixture(t)
	user := fixtures.NewUserBuilder().WithID(7).Build()
	f.users.On("GetByID", mock.Anything, uint(7)).Return(user, nil)

	token, err := f.tokens.Generate(7, user.Email)
	require.NoError(t, err)

	for _, scheme := range []string{"Bearer", "Token", "bearer"} {
		rec, seen := f.serve(scheme + " " + token)

		assert.Equal(t, http.StatusOK, rec.Code, scheme)
		require.NotNil(t, seen)
		assert.Equal(t, uint(7), seen.ID)
	}
	f.users.AssertExpectations(t)
}

func TestTokenAuth_DeletedUser(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByID", mock.Anything, uint(3)).Return(nil, apperrors.ErrNotFound)

	token, err := f.tokens.Generate(3, "gone@example.com")
	require.NoError(t, err)

	rec, _ := f.serve("Bearer " + token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgInactiveUser)
}

func TestTokenAuth_InactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	user := fixtures.NewUserBuilder().WithID(4).WithActive(false).Build()
	f.users.On("GetByID", mock.Anything, uint(4)).Return(user, nil)

	token, err := f.tokens.Generate(4, user.Email)
	require.NoError(t, err)

	rec, seen := f.serve("Token " + token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestTokenAuth_LookupFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByID", mock.Anything, uint(5)).Return(nil, errors.New("connection reset"))

	token, err := f.tokens.Generate(5, "test@example.com")
	require.NoError(t, err)

	rec, _ := f.serve("Bearer " + token)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestCurrentUser_Absent(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	user, ok := CurrentUser(c)
	assert.False(t, ok)
	assert.Nil(t, user)

	SetUser(c, &models.User{ID: 9})
	user, ok = CurrentUser(c)
	assert.True(t, ok)
	assert.Equal(t, uint(9), user.ID)
}
