package model

import "time"

// Producto represents a catalog product. Column and table names follow
// the existing schema, which the Angular front end reads directly.
type Producto struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	Nombre          string    `json:"nombre" gorm:"column:nombre;type:varchar(255);not null"`
	Descripcion     string    `json:"descripcion" gorm:"column:descripcion;type:text;not null"`
	Caracteristicas string    `json:"caracteristicas" gorm:"column:caracteristicas;type:text;not null"`
	Precio          float64   `json:"precio" gorm:"column:precio;not null"`
	Stock           int       `json:"stock" gorm:"column:stock;not null;default:0"`
	MarcaID         uint      `json:"marca_id" gorm:"column:marca_id;not null;index"`
	Descuento       int       `json:"descuento" gorm:"column:descuento;not null;default:0"`
	ImagenPrincipal string    `json:"imagen_principal" gorm:"column:imagen_principal;type:varchar(255);not null"`
	Fecha           time.Time `json:"fecha" gorm:"column:fecha;autoCreateTime"`
}

// TableName overrides the table name used by GORM
func (Producto) TableName() string {
	return "productos"
}

// GaleriaProducto is one auxiliary image belonging to a product
type GaleriaProducto struct {
	ID         uint   `json:"id" gorm:"primarykey"`
	ProductoID uint   `json:"producto_id" gorm:"column:producto_id;not null;index"`
	Imagen     string `json:"imagen" gorm:"column:imagen;type:varchar(255);not null"`
}

// TableName overrides the table name used by GORM
func (GaleriaProducto) TableName() string {
	return "galeria_productos"
}
