package model

// Administrador is a back-office user allowed to mutate the catalog.
// Contrasena holds a bcrypt hash, never a plain-text password.
type Administrador struct {
	ID         uint   `json:"id" gorm:"primarykey"`
	Usuario    string `json:"usuario" gorm:"column:usuario;type:varchar(100);not null;unique"`
	Contrasena string `json:"-" gorm:"column:contrasena;type:varchar(255);not null"`
}

// TableName overrides the table name used by GORM
func (Administrador) TableName() string {
	return "administradores"
}
