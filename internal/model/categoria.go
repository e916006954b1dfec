package model

// Categoria is a product category
type Categoria struct {
	ID     uint   `json:"id" gorm:"primarykey"`
	Nombre string `json:"nombre" gorm:"column:nombre;type:varchar(255);not null"`
}

// TableName overrides the table name used by GORM
func (Categoria) TableName() string {
	return "categorias"
}

// ProductoCategoria is the many-to-many join between products and
// categories. Callers manage the set of rows for a product as a batch.
type ProductoCategoria struct {
	ID          uint `json:"id" gorm:"primarykey"`
	ProductoID  uint `json:"producto_id" gorm:"column:producto_id;not null;index"`
	CategoriaID uint `json:"categoria_id" gorm:"column:categoria_id;not null"`
}

// TableName overrides the table name used by GORM
func (ProductoCategoria) TableName() string {
	return "productos_categorias"
}
