package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

// Context keys set by Auth for downstream middleware and handlers.
const (
	CtxUserID    = "user_id"
	CtxRole      = "role"
	CtxCompanyID = "company_id"
)

// Auth resolves the bearer token into a (subject id, role) pair for the
// duration of the request. Requests without a resolvable identity are
// rejected with 401 before any role or ownership check runs.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, _ := claims["sub"].(string)
			rawRole, _ := claims["role"].(string)
			role, ok := domain.ParseRole(rawRole)
			if sub == "" || !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing identity claims")
			}

			companyID, _ := claims["company_id"].(string)

			c.Set(CtxUserID, sub)
			c.Set(CtxRole, role)
			c.Set(CtxCompanyID, companyID)

			return next(c)
		}
	}
}
