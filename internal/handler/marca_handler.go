package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/RobertoSuarez97/almacenBackend/internal/model"
	"github.com/RobertoSuarez97/almacenBackend/pkg/database"
	"github.com/RobertoSuarez97/almacenBackend/pkg/logger"
	"github.com/RobertoSuarez97/almacenBackend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MarcaRequest defines the structure for brand creation/update requests
type MarcaRequest struct {
	Nombre string `json:"nombre"`
}

// ListMarcas returns every brand
func ListMarcas(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var marcas []model.Marca
	if result := database.GetDB().Find(&marcas); result.Error != nil {
		log.Error("Error al obtener las marcas", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error interno del servidor al obtener las marcas."})
	}

	return c.JSON(http.StatusOK, marcas)
}

// GetMarca returns a single brand by ID
func GetMarca(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var marca model.Marca
	if result := database.GetDB().First(&marca, id); result.Error != nil {
		return respondError(c, log,
			classifyLookup(result.Error, "Marca no encontrada.", "Error interno del servidor al obtener la marca."),
			"Error al obtener la marca")
	}

	return c.JSON(http.StatusOK, marca)
}

// AddMarca creates a brand. A duplicate name is a conflict, not a
// generic failure.
func AddMarca(c echo.Context) error {
	log := logger.FromEcho(c)

	var req MarcaRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Solicitud inválida", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "El campo nombre es obligatorio."})
	}
	if req.Nombre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "El campo nombre es obligatorio."})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	marca := model.Marca{Nombre: req.Nombre}
	if result := database.GetDB().Create(&marca); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			log.Warn("Marca duplicada", zap.String("nombre", req.Nombre))
			return c.JSON(http.StatusConflict, echo.Map{"message": "Ya existe una marca con ese nombre."})
		}
		log.Error("Error al agregar la marca", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error interno del servidor al agregar la marca."})
	}

	log.Info("Marca agregada correctamente",
		zap.Uint("marca_id", marca.ID),
		zap.String("nombre", marca.Nombre))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Marca agregada correctamente.",
		"marcaId": marca.ID,
	})
}

// UpdateMarca renames a brand by ID
func UpdateMarca(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req MarcaRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Solicitud inválida", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "El campo nombre es obligatorio."})
	}
	if req.Nombre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "El campo nombre es obligatorio."})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := database.GetDB().Model(&model.Marca{}).Where("id = ?", id).Update("nombre", req.Nombre)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			log.Warn("Marca duplicada", zap.String("nombre", req.Nombre))
			return c.JSON(http.StatusConflict, echo.Map{"message": "Ya existe una marca con ese nombre."})
		}
		log.Error("Error al actualizar la marca", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error interno del servidor al actualizar la marca."})
	}
	if result.RowsAffected == 0 {
		log.Warn("Marca no encontrada para actualizar", zap.String("marca_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Marca no encontrada para actualizar."})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Marca actualizada correctamente."})
}
