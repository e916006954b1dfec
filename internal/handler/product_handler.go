package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/RobertoSuarez97/almacenBackend/internal/apperr"
	"github.com/RobertoSuarez97/almacenBackend/internal/catalog"
	"github.com/RobertoSuarez97/almacenBackend/internal/model"
	"github.com/RobertoSuarez97/almacenBackend/internal/upload"
	"github.com/RobertoSuarez97/almacenBackend/pkg/database"
	"github.com/RobertoSuarez97/almacenBackend/pkg/logger"
	"github.com/RobertoSuarez97/almacenBackend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// novedadesLimit is how many latest products the storefront shows
const novedadesLimit = 14

// ProductHandler serves catalog reads and the product write pipeline
type ProductHandler struct {
	writer  *catalog.Writer
	staging *upload.Staging
}

// NewProductHandler creates a ProductHandler
func NewProductHandler(writer *catalog.Writer, staging *upload.Staging) *ProductHandler {
	return &ProductHandler{writer: writer, staging: staging}
}

// ListProductos returns every product
func (h *ProductHandler) ListProductos(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var productos []model.Producto
	if result := database.GetDB().Find(&productos); result.Error != nil {
		log.Error("Error al obtener productos", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener productos"})
	}

	return c.JSON(http.StatusOK, productos)
}

// Novedades returns the latest products by creation date
func (h *ProductHandler) Novedades(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var productos []model.Producto
	result := database.GetDB().Order("fecha DESC").Limit(novedadesLimit).Find(&productos)
	if result.Error != nil {
		log.Error("Error al obtener novedades", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener productos"})
	}

	return c.JSON(http.StatusOK, productos)
}

// Ofertas returns every product with a discount
func (h *ProductHandler) Ofertas(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var productos []model.Producto
	result := database.GetDB().Where("descuento > 0").Find(&productos)
	if result.Error != nil {
		log.Error("Error al obtener ofertas", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener productos"})
	}

	return c.JSON(http.StatusOK, productos)
}

// productoPorCategoria is one row of the joined category view
type productoPorCategoria struct {
	ProductoID          uint    `json:"producto_id"`
	ProductoNombre      string  `json:"producto_nombre"`
	ProductoDescripcion string  `json:"producto_descripcion"`
	Caracteristicas     string  `json:"caracteristicas"`
	Precio              float64 `json:"precio"`
	Stock               int     `json:"stock"`
	MarcaID             *uint   `json:"marca_id"`
	Descuento           int     `json:"descuento"`
	ImagenPrincipal     string  `json:"imagen_principal"`
	CategoriaID         *uint   `json:"categoria_id"`
	CategoriaNombre     *string `json:"categoria_nombre"`
	MarcaNombre         *string `json:"marca_nombre"`
}

// PorCategorias returns the joined product/category/brand view
func (h *ProductHandler) PorCategorias(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var rows []productoPorCategoria
	result := database.GetDB().Raw(`
		SELECT
			p.id AS producto_id,
			p.nombre AS producto_nombre,
			p.descripcion AS producto_descripcion,
			p.caracteristicas,
			p.precio,
			p.stock,
			p.marca_id,
			p.descuento,
			p.imagen_principal,
			c.id AS categoria_id,
			c.nombre AS categoria_nombre,
			m.nombre AS marca_nombre
		FROM productos p
		LEFT JOIN productos_categorias pc ON p.id = pc.producto_id
		LEFT JOIN marcas m ON p.marca_id = m.id
		LEFT JOIN categorias c ON pc.categoria_id = c.id
		ORDER BY c.id, p.id
	`).Scan(&rows)
	if result.Error != nil {
		log.Error("Error al obtener productos con categorías", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener productos con categorías"})
	}

	if rows == nil {
		rows = []productoPorCategoria{}
	}
	return c.JSON(http.StatusOK, rows)
}

// GetProducto returns a single product by ID
func (h *ProductHandler) GetProducto(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var producto model.Producto
	if result := database.GetDB().First(&producto, id); result.Error != nil {
		return respondError(c, log,
			classifyLookup(result.Error, "Producto no encontrado", "Error al obtener producto"),
			"Error al obtener producto")
	}

	return c.JSON(http.StatusOK, producto)
}

// Gallery returns the gallery rows of a product. A product without
// gallery images yields an empty list, not an error.
func (h *ProductHandler) Gallery(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var imagenes []model.GaleriaProducto
	result := database.GetDB().Where("producto_id = ?", id).Find(&imagenes)
	if result.Error != nil {
		log.Error("Error al obtener la galería",
			zap.String("producto_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener producto"})
	}

	if imagenes == nil {
		imagenes = []model.GaleriaProducto{}
	}
	return c.JSON(http.StatusOK, imagenes)
}

// PhotoUpload handles the multipart product creation: staged files plus
// scalar fields feed the transactional write pipeline.
func (h *ProductHandler) PhotoUpload(c echo.Context) error {
	log := logger.FromEcho(c)

	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, log, apperr.Validationf("La solicitud debe ser multipart/form-data"), "Error al leer el formulario")
	}

	files, err := h.staging.StageForm(form)
	if err != nil {
		prometheus.RecordProductOperation("create", "rejected")
		return respondError(c, log, err, "Error al preparar las imágenes")
	}

	in := &catalog.CreateInput{
		Nombre:          c.FormValue("name"),
		Descripcion:     c.FormValue("description"),
		Caracteristicas: c.FormValue("caracteristicas"),
		Precio:          c.FormValue("price"),
		Stock:           c.FormValue("quantity"),
		Marca:           c.FormValue("brand"),
		Descuento:       c.FormValue("discount"),
		Files:           files,
	}

	result, err := h.writer.Create(in)
	if err != nil {
		prometheus.RecordProductOperation("create", "failure")
		return respondError(c, log, err, "Error al agregar producto")
	}
	prometheus.RecordProductOperation("create", "success")

	gallery := result.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "Producto agregado correctamente",
		"productId": result.ProductoID,
		"photo":     result.Photo,
		"gallery":   gallery,
	})
}

// UpdateProducto handles the multipart product update
func (h *ProductHandler) UpdateProducto(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondError(c, log, apperr.Validationf("El ID del producto no es válido"), "Error al actualizar producto")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, log, apperr.Validationf("La solicitud debe ser multipart/form-data"), "Error al leer el formulario")
	}

	files, err := h.staging.StageUpdateForm(form)
	if err != nil {
		prometheus.RecordProductOperation("update", "rejected")
		return respondError(c, log, err, "Error al preparar las imágenes")
	}

	in := &catalog.UpdateInput{
		ID:              uint(id),
		Nombre:          c.FormValue("name"),
		Descripcion:     c.FormValue("description"),
		Caracteristicas: c.FormValue("caracteristicas"),
		Precio:          c.FormValue("price"),
		Stock:           c.FormValue("quantity"),
		Marca:           c.FormValue("brand"),
		Descuento:       c.FormValue("discount"),
		Photo:           c.FormValue("photo"),
		DeleteGallery:   c.FormValue("deleteGallery"),
		Files:           files,
	}

	result, err := h.writer.Update(in)
	if err != nil {
		prometheus.RecordProductOperation("update", "failure")
		return respondError(c, log, err, "Error al actualizar producto")
	}
	prometheus.RecordProductOperation("update", "success")

	gallery := result.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Producto actualizado correctamente",
		"photo":   result.Photo,
		"gallery": gallery,
	})
}
