package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/pkg/jwt"
)

func newAuthTestContext(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestEchoAuthSetsUserContext(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	userID := uuid.New()
	token, err := manager.GenerateAccessToken(userID, "ana@example.com", "Ana", "member")
	require.NoError(t, err)

	c, _ := newAuthTestContext(t, "Bearer "+token)

	called := false
	next := func(c echo.Context) error {
		called = true
		assert.Equal(t, userID, c.Get("user_id"))
		claims, ok := c.Get("claims").(*jwt.Claims)
		require.True(t, ok)
		assert.Equal(t, "ana@example.com", claims.Email)
		return nil
	}

	require.NoError(t, EchoAuth(manager)(next)(c))
	assert.True(t, called)
}

func TestEchoAuthRejectsMissingToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	c, _ := newAuthTestContext(t, "")

	err := EchoAuth(manager)(func(c echo.Context) error { return nil })(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestEchoAuthRejectsForeignToken(t *testing.T) {
	issuer := jwt.NewManager("other-secret", time.Hour)
	token, err := issuer.GenerateAccessToken(uuid.New(), "ana@example.com", "Ana", "member")
	require.NoError(t, err)

	manager := jwt.NewManager("test-secret", time.Hour)
	c, _ := newAuthTestContext(t, "Bearer "+token)

	err = EchoAuth(manager)(func(c echo.Context) error { return nil })(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestEchoAuthAcceptsCookieToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	token, err := manager.GenerateAccessToken(uuid.New(), "ana@example.com", "Ana", "member")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	require.NoError(t, EchoAuth(manager)(func(c echo.Context) error {
		called = true
		return nil
	})(c))
	assert.True(t, called)
}

func TestRequireRole(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	token, err := manager.GenerateAccessToken(uuid.New(), "ana@example.com", "Ana", "participant")
	require.NoError(t, err)

	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	chain := EchoAuth(manager)(RequireRole(entities.RoleAdmin)(handler))

	c, _ := newAuthTestContext(t, "Bearer "+token)
	err = chain(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)

	allowed := EchoAuth(manager)(RequireRole(entities.RoleParticipant)(handler))
	c, rec := newAuthTestContext(t, "Bearer "+token)
	require.NoError(t, allowed(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuthIgnoresBadToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	c, _ := newAuthTestContext(t, "Bearer not-a-token")

	called := false
	require.NoError(t, OptionalAuth(manager)(func(c echo.Context) error {
		called = true
		assert.Nil(t, c.Get("user_id"))
		return nil
	})(c))
	assert.True(t, called)
}
