package adoptionform

import (
	"context"
	"strconv"

	"pet-adoption-api/internal/domain/adoptions"
	"pet-adoption-api/internal/platform/httpclient"
)

const submitPath = "/api/solicitudes-adopcion"

// HTTPSubmitter envía el borrador a la API como multipart.
type HTTPSubmitter struct {
	client *httpclient.Client
	token  string
}

func NewHTTPSubmitter(c *httpclient.Client, token string) *HTTPSubmitter {
	return &HTTPSubmitter{client: c, token: token}
}

type submitResponse struct {
	Success   bool `json:"success"`
	Solicitud struct {
		ID     string           `json:"_id"`
		Estado adoptions.Status `json:"estado"`
	} `json:"solicitud"`
}

func (s *HTTPSubmitter) Submit(ctx context.Context, d Draft) (Receipt, error) {
	n := adoptions.Normalize(d.Submission())

	form := httpclient.Multipart{
		Fields: map[string]string{
			"idUsuario":       n.IDUsuario,
			"idRefugio":       n.IDRefugio,
			"idAnimal":        n.IDAnimal,
			"motivo":          n.Motivo,
			"haAdoptadoAntes": n.HaAdoptadoAntes,
			"tipoVivienda":    n.TipoVivienda,
		},
	}
	if n.HaAdoptadoAntes == adoptions.AnswerYes {
		form.Fields["cantidadMascotasAnteriores"] = strconv.Itoa(n.CantidadMascotasAnteriores)
	}
	if n.TipoVivienda == adoptions.HousingRent {
		form.Fields["permisoMascotasRenta"] = n.PermisoMascotasRenta
	}

	add := func(field string, paths []string) {
		for _, p := range paths {
			form.Files = append(form.Files, httpclient.FilePart{Field: field, Path: p})
		}
	}
	add(adoptions.FormDocumentoINE, d.DocumentoINE)
	add(adoptions.FormFotosEspacioMascota, d.FotosEspacioMascota)
	add(adoptions.FormFotosMascotasAnteriores, d.FotosMascotasAnteriores)

	var headers map[string]string
	if s.token != "" {
		headers = map[string]string{"Authorization": "Bearer " + s.token}
	}

	var resp submitResponse
	if err := s.client.PostMultipart(ctx, submitPath, headers, form, &resp); err != nil {
		return Receipt{}, err
	}
	return Receipt{ID: resp.Solicitud.ID, Estado: resp.Solicitud.Estado}, nil
}
