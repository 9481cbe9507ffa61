package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/actor"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

const ContextActor = "actor"

const tokenTTL = 24 * time.Hour

// ======================================================
// TOKENS
// ======================================================

func IssueToken(cfg *config.Config, u *models.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": string(u.Role),
		"exp":  now.Add(tokenTTL).Unix(),
		"iat":  now.Unix(),
	}
	if u.BarbershopID != nil {
		claims["barbershopId"] = *u.BarbershopID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

var errNoToken = errors.New("missing_authorization_header")

// parseActor checks exp against clk, the same clock IssueToken used.
func parseActor(cfg *config.Config, clk clock.Clock, header string) (actor.Actor, error) {
	if header == "" {
		return actor.Anonymous, errNoToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return actor.Anonymous, errors.New("invalid_authorization_header")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(clk.Now))
	if err != nil || !token.Valid {
		return actor.Anonymous, errors.New("invalid_token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return actor.Anonymous, errors.New("invalid_token_claims")
	}

	userID, ok := claims["sub"].(float64)
	if !ok || userID <= 0 {
		return actor.Anonymous, errors.New("invalid_token_payload")
	}
	role, _ := claims["role"].(string)

	a := actor.Actor{
		UserID: uint(userID),
		Role:   models.Role(role),
	}
	if shopID, ok := claims["barbershopId"].(float64); ok && shopID > 0 {
		a.BarbershopID = partition.Some(uint(shopID))
	}
	return a, nil
}

// ======================================================
// MIDDLEWARE
// ======================================================

// Auth rejects requests without a valid bearer token.
func Auth(cfg *config.Config, clk clock.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := parseActor(cfg, clk, c.GetHeader("Authorization"))
		if err != nil {
			httperr.Write(c, http.StatusUnauthorized, err.Error(), "Não autenticado.")
			c.Abort()
			return
		}

		c.Set(ContextActor, a)
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through. A bad token is still
// rejected rather than silently ignored.
func OptionalAuth(cfg *config.Config, clk clock.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := parseActor(cfg, clk, c.GetHeader("Authorization"))
		switch {
		case errors.Is(err, errNoToken):
			a = actor.Anonymous
		case err != nil:
			httperr.Write(c, http.StatusUnauthorized, err.Error(), "Não autenticado.")
			c.Abort()
			return
		}

		c.Set(ContextActor, a)
		c.Next()
	}
}

func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		a := ActorFrom(c)
		for _, r := range roles {
			if a.Role == r {
				c.Next()
				return
			}
		}

		httperr.Forbidden(c, "not_allowed", "Ação não permitida.")
		c.Abort()
	}
}

// ActorFrom returns the request actor, Anonymous when none was set.
func ActorFrom(c *gin.Context) actor.Actor {
	if v, ok := c.Get(ContextActor); ok {
		if a, ok := v.(actor.Actor); ok {
			return a
		}
	}
	return actor.Anonymous
}
