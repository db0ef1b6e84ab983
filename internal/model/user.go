package model

// User is a registered shopper. Column names follow the legacy usuarios table.
type User struct {
	ID           uint   `json:"id" gorm:"column:id_usuario;primaryKey;autoIncrement"`
	FirstName    string `json:"first_name" gorm:"column:nombre;not null"`
	LastName     string `json:"last_name" gorm:"column:apellido;not null"`
	PasswordHash string `json:"-" gorm:"column:contrasena;not null"` // Never expose in JSON
	Handle       string `json:"username" gorm:"column:usuario;uniqueIndex;size:255;not null"`
	Email        string `json:"email" gorm:"column:correo;uniqueIndex;size:255;not null"`
}

// TableName keeps the legacy table name.
func (User) TableName() string {
	return "usuarios"
}
