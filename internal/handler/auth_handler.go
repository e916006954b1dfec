package handler

import (
	"net/http"
	"time"

	"github.com/RobertoSuarez97/almacenBackend/internal/model"
	"github.com/RobertoSuarez97/almacenBackend/pkg/database"
	"github.com/RobertoSuarez97/almacenBackend/pkg/jwtutil"
	"github.com/RobertoSuarez97/almacenBackend/pkg/logger"
	"github.com/RobertoSuarez97/almacenBackend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login authenticates an admin user and issues a signed token.
// Credentials are verified against a bcrypt hash; both unknown user and
// wrong password answer the same 401.
func Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Solicitud de login inválida", zap.Error(err))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Solicitud inválida"})
	}
	if req.Username == "" || req.Password == "" {
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Usuario y contraseña son obligatorios"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.Administrador
	result := database.GetDB().Where("usuario = ?", req.Username).First(&user)
	if result.Error != nil {
		log.Warn("Usuario no encontrado", zap.String("username", req.Username))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Credenciales inválidas"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Contrasena), []byte(req.Password)); err != nil {
		log.Warn("Password incorrecto", zap.String("username", req.Username))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Credenciales inválidas"})
	}

	token, err := jwtutil.GenerateToken(user.Usuario, user.ID)
	if err != nil {
		log.Error("Error al generar el token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error del servidor"})
	}

	log.Info("Login correcto", zap.String("username", user.Usuario))
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}
