package auth

// Kind distingue si el token pertenece a un usuario o a un refugio.
type Kind string

const (
	KindUser    Kind = "usuario"
	KindShelter Kind = "refugio"
)

// Roles de usuario (4 normal, 5 admin).
const (
	RoleNormal = 4
	RoleAdmin  = 5
)

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Kind   Kind
	Role   int
}

func (c Claims) IsAdmin() bool {
	return c.Kind == KindUser && c.Role == RoleAdmin
}
