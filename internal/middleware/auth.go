package middleware

import (
	"net/http"
	"strings"

	"github.com/RobertoSuarez97/almacenBackend/pkg/jwtutil"
	"github.com/RobertoSuarez97/almacenBackend/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the admin JWT token on mutating catalog routes
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Se requiere un token de autorización"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Formato de autorización inválido, se espera un token Bearer"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token inválido o expirado"})
		}

		// Store user info in context for later use
		c.Set("username", claims.Username)
		c.Set("user_id", claims.UserID)

		return next(c)
	}
}
