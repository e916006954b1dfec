package catalog

import (
	"github.com/RobertoSuarez97/almacenBackend/internal/model"

	"gorm.io/gorm"
)

// Uploader transfers a staged local file to the remote asset store.
// Implementations delete the local file after the attempt.
type Uploader interface {
	Upload(localPath, remoteName string) error
}

// Store hands out transactions over the relational store
type Store interface {
	Begin() (Tx, error)
}

// Tx is one transaction holding a dedicated pooled connection from
// Begin until Commit or Rollback.
type Tx interface {
	InsertProducto(p *model.Producto) error
	UpdateProducto(p *model.Producto) (int64, error)
	InsertGaleria(rows []model.GaleriaProducto) error
	DeleteGaleria(ids []uint) error
	Commit() error
	Rollback() error
}

// GormStore implements Store over a gorm connection pool
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store over the given gorm handle
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Begin opens a transaction on a dedicated connection
func (s *GormStore) Begin() (Tx, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &gormTx{tx: tx}, nil
}

type gormTx struct {
	tx *gorm.DB
}

func (t *gormTx) InsertProducto(p *model.Producto) error {
	return t.tx.Create(p).Error
}

// UpdateProducto updates every scalar column by id and reports the
// number of rows touched so the caller can distinguish "not found".
// The map form forces zero values (precio, stock, descuento) through.
func (t *gormTx) UpdateProducto(p *model.Producto) (int64, error) {
	result := t.tx.Model(&model.Producto{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"nombre":           p.Nombre,
		"descripcion":      p.Descripcion,
		"caracteristicas":  p.Caracteristicas,
		"precio":           p.Precio,
		"stock":            p.Stock,
		"marca_id":         p.MarcaID,
		"descuento":        p.Descuento,
		"imagen_principal": p.ImagenPrincipal,
	})
	return result.RowsAffected, result.Error
}

func (t *gormTx) InsertGaleria(rows []model.GaleriaProducto) error {
	if len(rows) == 0 {
		return nil
	}
	return t.tx.Create(&rows).Error
}

func (t *gormTx) DeleteGaleria(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return t.tx.Delete(&model.GaleriaProducto{}, ids).Error
}

func (t *gormTx) Commit() error {
	return t.tx.Commit().Error
}

func (t *gormTx) Rollback() error {
	return t.tx.Rollback().Error
}
