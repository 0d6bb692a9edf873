package adoptions

import "time"

// Valores que manda la app en el formulario.
const (
	AnswerYes = "si"
	AnswerNo  = "no"

	HousingOwn  = "propio"
	HousingRent = "renta"
)

// Request es una solicitud de adopción (colección solicitudes_adopcion).
// Los archivos son filenames en el almacenamiento de uploads.
type Request struct {
	ID        string `bson:"_id"`
	IDUsuario string `bson:"idUsuario"`
	IDAnimal  string `bson:"idAnimal"`
	IDRefugio string `bson:"idRefugio"`
	Motivo    string `bson:"motivo"`
	Estado    Status `bson:"estado"`

	DocumentoINE []string `bson:"documentoINE"`

	HaAdoptadoAntes            string   `bson:"haAdoptadoAntes"`
	CantidadMascotasAnteriores int      `bson:"cantidadMascotasAnteriores"`
	FotosMascotasAnteriores    []string `bson:"fotosMascotasAnteriores"`

	TipoVivienda         string   `bson:"tipoVivienda"`
	PermisoMascotasRenta string   `bson:"permisoMascotasRenta,omitempty"`
	FotosEspacioMascota  []string `bson:"fotosEspacioMascota"`

	FechaSolicitud time.Time `bson:"fechaSolicitud"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

// Files devuelve todos los archivos adjuntos de la solicitud.
func (r Request) Files() []string {
	out := make([]string, 0, len(r.DocumentoINE)+len(r.FotosMascotasAnteriores)+len(r.FotosEspacioMascota))
	out = append(out, r.DocumentoINE...)
	out = append(out, r.FotosMascotasAnteriores...)
	out = append(out, r.FotosEspacioMascota...)
	return out
}

// Resúmenes para "poblar" las referencias en los listados.

type UserSummary struct {
	ID         string
	Nombre     string
	Email      string
	Telefono   string
	FotoPerfil string
}

type AnimalSummary struct {
	ID        string
	IDRefugio string
	Nombre    string
	Especie   string
	Raza      string
	Fotos     []string
	Adoptado  bool
}

type ShelterSummary struct {
	ID        string
	Nombre    string
	Email     string
	Telefono  string
	Direccion string
	Logo      string
}

// RequestView es una solicitud con sus referencias resueltas.
// Una referencia que ya no existe queda en nil.
type RequestView struct {
	Request Request
	Usuario *UserSummary
	Animal  *AnimalSummary
	Refugio *ShelterSummary
}
