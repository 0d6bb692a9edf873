package shelters

import "time"

// Shelter es un refugio. Los archivos se guardan como filenames.
type Shelter struct {
	ID                 string   `bson:"_id"`
	Nombre             string   `bson:"nombre"`
	Email              string   `bson:"email"`
	PasswordHash       string   `bson:"password"`
	Telefono           string   `bson:"telefono"`
	Direccion          string   `bson:"direccion"`
	Descripcion        string   `bson:"descripcion"`
	Logo               string   `bson:"logo,omitempty"`
	DocumentosLegales  []string `bson:"documentosLegales"`
	FormularioAdopcion string   `bson:"formularioAdopcion,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Files devuelve todos los archivos que referencia el refugio.
func (s Shelter) Files() []string {
	out := make([]string, 0, len(s.DocumentosLegales)+2)
	if s.Logo != "" {
		out = append(out, s.Logo)
	}
	out = append(out, s.DocumentosLegales...)
	if s.FormularioAdopcion != "" {
		out = append(out, s.FormularioAdopcion)
	}
	return out
}
