package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/actor"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

var (
	cfg = &config.Config{JWTSecret: "test-secret"}
	now = clock.Fixed{T: time.Date(2025, 3, 5, 15, 0, 0, 0, time.UTC)}
)

func newRouter(mw ...gin.HandlerFunc) (*gin.Engine, *actor.Actor) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))

	var seen actor.Actor
	handlers := append(mw, func(c *gin.Context) {
		seen = ActorFrom(c)
		c.Status(http.StatusOK)
	})
	r.GET("/x", handlers...)
	return r, &seen
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func token(t *testing.T, u *models.User) string {
	t.Helper()
	tok, err := IssueToken(cfg, u, now.Now())
	require.NoError(t, err)
	return tok
}

func TestAuth_RoundTrip(t *testing.T) {
	shopID := uint(4)
	r, seen := newRouter(Auth(cfg, now))

	rec := do(r, token(t, &models.User{ID: 7, Role: models.RoleBarber, BarbershopID: &shopID}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), seen.UserID)
	assert.Equal(t, models.RoleBarber, seen.Role)
	assert.Equal(t, partition.Some(4), seen.BarbershopID)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestAuth_AdminHasNoShop(t *testing.T) {
	r, seen := newRouter(Auth(cfg, now))

	rec := do(r, token(t, &models.User{ID: 1, Role: models.RoleAdmin}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, seen.BarbershopID.IsNone())
}

func TestAuth_Rejects(t *testing.T) {
	r, _ := newRouter(Auth(cfg, now))

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "garbage").Code)

	other := &config.Config{JWTSecret: "other"}
	tok, err := IssueToken(other, &models.User{ID: 1, Role: models.RoleClient}, now.Now())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, tok).Code)

	expired, err := IssueToken(cfg, &models.User{ID: 1, Role: models.RoleClient}, now.Now().Add(-48*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, expired).Code)
}

func TestOptionalAuth(t *testing.T) {
	r, seen := newRouter(OptionalAuth(cfg, now))

	rec := do(r, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, actor.Anonymous, *seen)

	assert.Equal(t, http.StatusUnauthorized, do(r, "garbage").Code)
}

func TestRequireRole(t *testing.T) {
	r, _ := newRouter(Auth(cfg, now), RequireRole(models.RoleAdmin))

	assert.Equal(t, http.StatusForbidden, do(r, token(t, &models.User{ID: 2, Role: models.RoleBarber})).Code)
	assert.Equal(t, http.StatusOK, do(r, token(t, &models.User{ID: 1, Role: models.RoleAdmin})).Code)
}

func TestAuth_ExpiryFollowsClock(t *testing.T) {
	issued := time.Date(2025, 3, 5, 15, 0, 0, 0, time.UTC)
	tok, err := IssueToken(cfg, &models.User{ID: 3, Role: models.RoleClient}, issued)
	require.NoError(t, err)

	// Far from the wall clock, still valid on the clock that issued it.
	r, _ := newRouter(Auth(cfg, clock.Fixed{T: issued.Add(time.Hour)}))
	assert.Equal(t, http.StatusOK, do(r, tok).Code)

	r, _ = newRouter(OptionalAuth(cfg, clock.Fixed{T: issued.Add(time.Hour)}))
	assert.Equal(t, http.StatusOK, do(r, tok).Code)

	r, _ = newRouter(Auth(cfg, clock.Fixed{T: issued.Add(25 * time.Hour)}))
	assert.Equal(t, http.StatusUnauthorized, do(r, tok).Code)
}
