package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-adoption-api/internal/domain/adoptions"
)

type AdoptionsRepo struct {
	db *sql.DB
}

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

const requestColumns = `id, id_usuario, id_animal, id_refugio, motivo, estado,
	documento_ine, ha_adoptado_antes, cantidad_mascotas_anteriores, fotos_mascotas_anteriores,
	tipo_vivienda, permiso_mascotas_renta, fotos_espacio_mascota, fecha_solicitud, updated_at`

func (r *AdoptionsRepo) Create(ctx context.Context, req adoptions.Request) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO solicitudes_adopcion (`+requestColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		req.ID,
		req.IDUsuario,
		req.IDAnimal,
		req.IDRefugio,
		req.Motivo,
		string(req.Estado),
		textArray(req.DocumentoINE),
		req.HaAdoptadoAntes,
		req.CantidadMascotasAnteriores,
		textArray(req.FotosMascotasAnteriores),
		req.TipoVivienda,
		req.PermisoMascotasRenta,
		textArray(req.FotosEspacioMascota),
		req.FechaSolicitud,
		req.UpdatedAt,
	)
	return err
}

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	req, err := scanRequest(r.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM solicitudes_adopcion WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return adoptions.Request{}, adoptions.ErrNotFound
	}
	return req, err
}

// UpdateStatus: el WHERE incluye el estado actual (compare-and-set).
func (r *AdoptionsRepo) UpdateStatus(ctx context.Context, id string, from, to adoptions.Status, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE solicitudes_adopcion
		SET estado = $3, updated_at = $4
		WHERE id = $1 AND estado = $2
	`, id, string(from), string(to), at)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM solicitudes_adopcion WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return adoptions.ErrNotFound
	}
	return adoptions.ErrInvalidTransition
}

func (r *AdoptionsRepo) ListByUser(ctx context.Context, userID string) ([]adoptions.Request, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM solicitudes_adopcion
		WHERE id_usuario = $1
		ORDER BY fecha_solicitud DESC
	`, userID)
}

func (r *AdoptionsRepo) ListByShelter(ctx context.Context, shelterID string, status adoptions.Status) ([]adoptions.Request, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM solicitudes_adopcion
		WHERE id_refugio = $1 AND ($2 = '' OR estado = $2)
		ORDER BY fecha_solicitud DESC
	`, shelterID, string(status))
}

func (r *AdoptionsRepo) list(ctx context.Context, query string, args ...any) ([]adoptions.Request, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func scanRequest(row scanner) (adoptions.Request, error) {
	var (
		req    adoptions.Request
		estado string
	)
	err := row.Scan(
		&req.ID,
		&req.IDUsuario,
		&req.IDAnimal,
		&req.IDRefugio,
		&req.Motivo,
		&estado,
		textArrayScanner(&req.DocumentoINE),
		&req.HaAdoptadoAntes,
		&req.CantidadMascotasAnteriores,
		textArrayScanner(&req.FotosMascotasAnteriores),
		&req.TipoVivienda,
		&req.PermisoMascotasRenta,
		textArrayScanner(&req.FotosEspacioMascota),
		&req.FechaSolicitud,
		&req.UpdatedAt,
	)
	req.Estado = adoptions.Status(estado)
	return req, err
}
