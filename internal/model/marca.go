package model

// Marca is a product brand. Names are unique; a duplicate insert is a
// conflict, not a generic failure.
type Marca struct {
	ID     uint   `json:"id" gorm:"primarykey"`
	Nombre string `json:"nombre" gorm:"column:nombre;type:varchar(255);not null;unique"`
}

// TableName overrides the table name used by GORM
func (Marca) TableName() string {
	return "marcas"
}
