package users

import "time"

// Roles (mismo valor que guarda la app).
const (
	RoleNormal = 4
	RoleAdmin  = 5
)

// User es el documento de la colección usuarios.
type User struct {
	ID           string `bson:"_id"`
	Nombre       string `bson:"nombre"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password"`
	Telefono     string `bson:"telefono"`
	Direccion    string `bson:"direccion"`
	FotoPerfil   string `bson:"fotoPerfil,omitempty"` // filename en uploads
	Rol          int    `bson:"rol"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}
