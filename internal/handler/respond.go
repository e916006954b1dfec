package handler

import (
	"errors"

	"github.com/RobertoSuarez97/almacenBackend/internal/apperr"
	"github.com/RobertoSuarez97/almacenBackend/pkg/config"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var devMode bool

// Init configures handler-level behavior from the application config
func Init(cfg *config.Config) {
	devMode = cfg.IsDevelopment()
}

// respondError maps an application error to its HTTP response. Detailed
// error objects are only exposed in development-like mode.
func respondError(c echo.Context, log *zap.Logger, err error, context string) error {
	status := apperr.Status(err)
	if status >= 500 {
		log.Error(context, zap.Error(err))
	} else {
		log.Warn(context, zap.Error(err))
	}

	body := echo.Map{"message": apperr.Message(err)}
	if devMode {
		body["detail"] = err.Error()
	}
	return c.JSON(status, body)
}

// classifyLookup maps a single-row lookup error: a missing row is
// NotFound, anything else stays an internal failure.
func classifyLookup(err error, notFoundMsg, internalMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundf("%s", notFoundMsg)
	}
	return apperr.Wrap(apperr.Internal, internalMsg, err)
}
