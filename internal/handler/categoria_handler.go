package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/RobertoSuarez97/almacenBackend/internal/model"
	"github.com/RobertoSuarez97/almacenBackend/pkg/database"
	"github.com/RobertoSuarez97/almacenBackend/pkg/logger"
	"github.com/RobertoSuarez97/almacenBackend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ListCategorias returns every category
func ListCategorias(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var categorias []model.Categoria
	if result := database.GetDB().Find(&categorias); result.Error != nil {
		log.Error("Error al obtener las categorías", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error interno del servidor al obtener las categorías."})
	}

	return c.JSON(http.StatusOK, categorias)
}

// DetalleStore persists the product-category association rows
type DetalleStore interface {
	InsertDetalles(rows []model.ProductoCategoria) error
	ListDetalles(productoID uint) ([]uint, error)
	DeleteDetalles(productoID uint) (int64, error)
}

type gormDetalleStore struct {
	db *gorm.DB
}

// NewGormDetalleStore creates the GORM-backed DetalleStore
func NewGormDetalleStore(db *gorm.DB) DetalleStore {
	return &gormDetalleStore{db: db}
}

func (s *gormDetalleStore) InsertDetalles(rows []model.ProductoCategoria) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return s.db.Create(&rows).Error
}

func (s *gormDetalleStore) ListDetalles(productoID uint) ([]uint, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var ids []uint
	err := s.db.Model(&model.ProductoCategoria{}).
		Where("producto_id = ?", productoID).
		Pluck("categoria_id", &ids).Error
	return ids, err
}

func (s *gormDetalleStore) DeleteDetalles(productoID uint) (int64, error) {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := s.db.Where("producto_id = ?", productoID).Delete(&model.ProductoCategoria{})
	return result.RowsAffected, result.Error
}

// CategoriaHandler serves the product-category association endpoints
type CategoriaHandler struct {
	store DetalleStore
}

// NewCategoriaHandler creates a CategoriaHandler
func NewCategoriaHandler(store DetalleStore) *CategoriaHandler {
	return &CategoriaHandler{store: store}
}

// AddDetalleCategoria associates a batch of category IDs to a product.
// One insert statement covers the whole batch; there is no transaction
// here on purpose, the join table is decoupled from the product write
// pipeline.
func (h *CategoriaHandler) AddDetalleCategoria(c echo.Context) error {
	log := logger.FromEcho(c)

	productoID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "El ID del producto y la lista de categorías son obligatorios."})
	}

	var categorias []uint
	if err := c.Bind(&categorias); err != nil || len(categorias) == 0 {
		log.Warn("Lista de categorías inválida",
			zap.Uint64("producto_id", productoID),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "El ID del producto y la lista de categorías son obligatorios."})
	}

	rows := make([]model.ProductoCategoria, 0, len(categorias))
	for _, categoriaID := range categorias {
		rows = append(rows, model.ProductoCategoria{
			ProductoID:  uint(productoID),
			CategoriaID: categoriaID,
		})
	}

	if err := h.store.InsertDetalles(rows); err != nil {
		log.Error("Error al asociar categorías al producto",
			zap.Uint64("producto_id", productoID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error interno del servidor al asociar las categorías."})
	}

	log.Info("Categorías asociadas al producto",
		zap.Uint64("producto_id", productoID),
		zap.Int("count", len(rows)))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Categorías asociadas al producto correctamente.",
		"count":   len(rows),
	})
}

// categoriaDetalle is one associated category id
type categoriaDetalle struct {
	CategoriaID uint `json:"categoria_id"`
}

// GetDetalleCategoria returns the category IDs associated with a
// product. A product without associations yields an empty list.
func (h *CategoriaHandler) GetDetalleCategoria(c echo.Context) error {
	log := logger.FromEcho(c)

	productoID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "El ID del producto no es válido."})
	}

	ids, err := h.store.ListDetalles(uint(productoID))
	if err != nil {
		log.Error("Error al obtener las categorías del producto",
			zap.Uint64("producto_id", productoID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error interno del servidor al obtener las categorías del producto."})
	}

	detalles := make([]categoriaDetalle, 0, len(ids))
	for _, id := range ids {
		detalles = append(detalles, categoriaDetalle{CategoriaID: id})
	}
	return c.JSON(http.StatusOK, detalles)
}

// DeleteDetalleCategoria removes every association of a product.
// Deleting when nothing is associated is still a success: the delete is
// idempotent, the response only words it differently.
func (h *CategoriaHandler) DeleteDetalleCategoria(c echo.Context) error {
	log := logger.FromEcho(c)

	productoID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "El ID del producto no es válido."})
	}

	deleted, err := h.store.DeleteDetalles(uint(productoID))
	if err != nil {
		log.Error("Error al eliminar las categorías del producto",
			zap.Uint64("producto_id", productoID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error interno del servidor al eliminar las categorías."})
	}

	message := "Categorías del producto eliminadas correctamente."
	if deleted == 0 {
		message = "El producto no tenía categorías asociadas."
	}

	log.Info("Categorías del producto eliminadas",
		zap.Uint64("producto_id", productoID),
		zap.Int64("rows_affected", deleted))
	return c.JSON(http.StatusOK, echo.Map{
		"message": message,
		"deleted": deleted,
	})
}
