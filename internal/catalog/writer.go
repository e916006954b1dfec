// Package catalog holds the product write pipeline: the one place
// where the relational store, the remote asset store and the local
// staging area must be coordinated under a single transaction.
package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/RobertoSuarez97/almacenBackend/internal/apperr"
	"github.com/RobertoSuarez97/almacenBackend/internal/model"
	"github.com/RobertoSuarez97/almacenBackend/internal/upload"

	"go.uber.org/zap"
)

// Writer orchestrates product creation and update
type Writer struct {
	store    Store
	uploader Uploader
	log      *zap.Logger
}

// NewWriter creates a Writer over the given store and uploader
func NewWriter(store Store, uploader Uploader, log *zap.Logger) *Writer {
	return &Writer{store: store, uploader: uploader, log: log}
}

// CreateInput carries the raw multipart field values of a create
// request. Empty string means the field was absent.
type CreateInput struct {
	Nombre          string
	Descripcion     string
	Caracteristicas string
	Precio          string
	Stock           string
	Marca           string
	Descuento       string
	Files           *upload.Form
}

// CreateResult summarizes the persisted identifiers and asset names
type CreateResult struct {
	ProductoID uint     `json:"productId"`
	Photo      string   `json:"photo"`
	Gallery    []string `json:"gallery"`
}

// UpdateInput carries the raw multipart field values of an update
// request. Every scalar field is mandatory, including Descuento: zero
// is accepted, absence is not. Photo is the existing image name to keep
// when no replacement file was uploaded.
type UpdateInput struct {
	ID              uint
	Nombre          string
	Descripcion     string
	Caracteristicas string
	Precio          string
	Stock           string
	Marca           string
	Descuento       string
	Photo           string
	DeleteGallery   string
	Files           *upload.Form
}

// UpdateResult summarizes the outcome of an update
type UpdateResult struct {
	Photo   string   `json:"photo"`
	Gallery []string `json:"gallery"`
}

// Create validates the submission and then runs the transactional
// pipeline: upload main image, insert product, upload gallery files,
// insert gallery rows, commit. Any failure rolls the transaction back
// and releases the connection; staged local files never survive the
// attempt. Remote assets uploaded before the failure are not retracted,
// only reported.
func (w *Writer) Create(in *CreateInput) (result *CreateResult, err error) {
	producto, err := in.validate()
	if err != nil {
		if in.Files != nil {
			in.Files.CleanupLocal()
		}
		return nil, err
	}

	main := in.Files.MainImage
	tx, err := w.store.Begin()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Error al iniciar la transacción", err)
	}

	var uploaded []string
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			w.log.Error("Error al revertir la transacción", zap.Error(rbErr))
		}
		in.Files.CleanupLocal()
		if len(uploaded) > 0 {
			// Known gap: these remote assets are orphaned and must be
			// reaped out of band.
			w.log.Warn("Imágenes remotas huérfanas tras rollback",
				zap.Strings("remote_names", uploaded))
		}
	}()

	// Upload-before-insert: the product row must never reference an
	// image that is not durably stored.
	if err := w.uploader.Upload(main.LocalPath, main.StoredName); err != nil {
		return nil, err
	}
	uploaded = append(uploaded, main.StoredName)
	producto.ImagenPrincipal = main.StoredName

	if err := tx.InsertProducto(producto); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Error al agregar producto", err)
	}

	galleryNames, rows, err := w.uploadGallery(producto.ID, in.Files.Gallery, &uploaded)
	if err != nil {
		return nil, err
	}
	if err := tx.InsertGaleria(rows); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Error al guardar la galería", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Error al confirmar la transacción", err)
	}
	committed = true

	w.log.Info("Producto agregado correctamente",
		zap.Uint("producto_id", producto.ID),
		zap.String("imagen_principal", producto.ImagenPrincipal),
		zap.Int("galeria", len(galleryNames)))

	return &CreateResult{
		ProductoID: producto.ID,
		Photo:      producto.ImagenPrincipal,
		Gallery:    galleryNames,
	}, nil
}

// Update validates the submission and runs the transactional pipeline:
// optionally upload a replacement main image, update the product row
// (zero rows affected means not found), delete the requested gallery
// rows, upload and insert new gallery files, commit.
func (w *Writer) Update(in *UpdateInput) (result *UpdateResult, err error) {
	producto, deleteIDs, err := in.validate()
	if err != nil {
		if in.Files != nil {
			in.Files.CleanupLocal()
		}
		return nil, err
	}

	tx, err := w.store.Begin()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Error al iniciar la transacción", err)
	}

	var uploaded []string
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			w.log.Error("Error al revertir la transacción", zap.Error(rbErr))
		}
		if in.Files != nil {
			in.Files.CleanupLocal()
		}
		if len(uploaded) > 0 {
			w.log.Warn("Imágenes remotas huérfanas tras rollback",
				zap.Strings("remote_names", uploaded))
		}
	}()

	if in.Files != nil && in.Files.MainImage != nil {
		main := in.Files.MainImage
		if err := w.uploader.Upload(main.LocalPath, main.StoredName); err != nil {
			return nil, err
		}
		uploaded = append(uploaded, main.StoredName)
		producto.ImagenPrincipal = main.StoredName
	}

	affected, err := tx.UpdateProducto(producto)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Error al actualizar producto", err)
	}
	if affected == 0 {
		return nil, apperr.NotFoundf("Producto no encontrado")
	}

	if err := tx.DeleteGaleria(deleteIDs); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Error al eliminar imágenes de la galería", err)
	}

	var galleryNames []string
	if in.Files != nil {
		var rows []model.GaleriaProducto
		galleryNames, rows, err = w.uploadGallery(producto.ID, in.Files.Gallery, &uploaded)
		if err != nil {
			return nil, err
		}
		if err := tx.InsertGaleria(rows); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "Error al guardar la galería", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Error al confirmar la transacción", err)
	}
	committed = true

	w.log.Info("Producto actualizado correctamente",
		zap.Uint("producto_id", producto.ID),
		zap.Int("galeria_nueva", len(galleryNames)),
		zap.Int("galeria_eliminada", len(deleteIDs)))

	return &UpdateResult{Photo: producto.ImagenPrincipal, Gallery: galleryNames}, nil
}

// uploadGallery transfers gallery files one at a time, in order, and
// builds the rows to insert for the owning product.
func (w *Writer) uploadGallery(productoID uint, parts []upload.FilePart, uploaded *[]string) ([]string, []model.GaleriaProducto, error) {
	var names []string
	var rows []model.GaleriaProducto
	for _, part := range parts {
		if err := w.uploader.Upload(part.LocalPath, part.StoredName); err != nil {
			return nil, nil, err
		}
		*uploaded = append(*uploaded, part.StoredName)
		names = append(names, part.StoredName)
		rows = append(rows, model.GaleriaProducto{ProductoID: productoID, Imagen: part.StoredName})
	}
	return names, rows, nil
}

func (in *CreateInput) validate() (*model.Producto, error) {
	if in.Nombre == "" || in.Descripcion == "" || in.Caracteristicas == "" ||
		in.Precio == "" || in.Stock == "" || in.Marca == "" {
		return nil, apperr.Validationf("Todos los campos son obligatorios")
	}
	if in.Files == nil || in.Files.MainImage == nil {
		return nil, apperr.Validationf("Debe subir una imagen principal")
	}

	precio, err := parsePrecio(in.Precio)
	if err != nil {
		return nil, err
	}
	stock, err := parseStock(in.Stock)
	if err != nil {
		return nil, err
	}
	marcaID, err := parseMarca(in.Marca)
	if err != nil {
		return nil, err
	}

	// Discount defaults to zero when absent on create.
	descuento := 0
	if in.Descuento != "" {
		descuento, err = parseDescuento(in.Descuento)
		if err != nil {
			return nil, err
		}
	}

	return &model.Producto{
		Nombre:          in.Nombre,
		Descripcion:     in.Descripcion,
		Caracteristicas: in.Caracteristicas,
		Precio:          precio,
		Stock:           stock,
		MarcaID:         marcaID,
		Descuento:       descuento,
	}, nil
}

func (in *UpdateInput) validate() (*model.Producto, []uint, error) {
	// Unlike create, descuento is mandatory here: zero is accepted,
	// absence is rejected.
	if in.Nombre == "" || in.Descripcion == "" || in.Caracteristicas == "" ||
		in.Precio == "" || in.Stock == "" || in.Marca == "" || in.Descuento == "" {
		return nil, nil, apperr.Validationf("Por favor, completa todos los campos")
	}

	precio, err := parsePrecio(in.Precio)
	if err != nil {
		return nil, nil, err
	}
	stock, err := parseStock(in.Stock)
	if err != nil {
		return nil, nil, err
	}
	marcaID, err := parseMarca(in.Marca)
	if err != nil {
		return nil, nil, err
	}
	descuento, err := parseDescuento(in.Descuento)
	if err != nil {
		return nil, nil, err
	}

	photo := in.Photo
	if in.Files == nil || in.Files.MainImage == nil {
		if photo == "" {
			return nil, nil, apperr.Validationf("El producto debe conservar una imagen principal")
		}
	}

	var deleteIDs []uint
	if strings.TrimSpace(in.DeleteGallery) != "" {
		if err := json.Unmarshal([]byte(in.DeleteGallery), &deleteIDs); err != nil {
			return nil, nil, apperr.Validationf("La lista de imágenes a eliminar no es válida")
		}
	}

	return &model.Producto{
		ID:              in.ID,
		Nombre:          in.Nombre,
		Descripcion:     in.Descripcion,
		Caracteristicas: in.Caracteristicas,
		Precio:          precio,
		Stock:           stock,
		MarcaID:         marcaID,
		Descuento:       descuento,
		ImagenPrincipal: photo,
	}, deleteIDs, nil
}

func parsePrecio(raw string) (float64, error) {
	precio, err := strconv.ParseFloat(raw, 64)
	if err != nil || precio < 0 {
		return 0, apperr.Validationf("El precio no es válido")
	}
	return precio, nil
}

func parseStock(raw string) (int, error) {
	stock, err := strconv.Atoi(raw)
	if err != nil || stock < 0 {
		return 0, apperr.Validationf("El stock no es válido")
	}
	return stock, nil
}

func parseMarca(raw string) (uint, error) {
	marca, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || marca == 0 {
		return 0, apperr.Validationf("La marca no es válida")
	}
	return uint(marca), nil
}

func parseDescuento(raw string) (int, error) {
	descuento, err := strconv.Atoi(raw)
	if err != nil || descuento < 0 || descuento > 100 {
		return 0, apperr.Validationf("El descuento debe estar entre 0 y 100")
	}
	return descuento, nil
}
