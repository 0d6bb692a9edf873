package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-adoption-api/internal/domain/shelters"
)

type SheltersRepo struct {
	db *sql.DB
}

func NewSheltersRepo(db *sql.DB) *SheltersRepo {
	return &SheltersRepo{db: db}
}

const shelterColumns = `id, nombre, email, password, telefono, direccion, descripcion,
	logo, documentos_legales, formulario_adopcion, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func (r *SheltersRepo) Create(ctx context.Context, s shelters.Shelter) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refugios (`+shelterColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		s.ID,
		s.Nombre,
		s.Email,
		s.PasswordHash,
		s.Telefono,
		s.Direccion,
		s.Descripcion,
		s.Logo,
		textArray(s.DocumentosLegales),
		s.FormularioAdopcion,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return shelters.ErrConflict
	}
	return err
}

func (r *SheltersRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	return r.getOne(ctx, `SELECT `+shelterColumns+` FROM refugios WHERE id = $1`, id)
}

func (r *SheltersRepo) GetByEmail(ctx context.Context, email string) (shelters.Shelter, error) {
	return r.getOne(ctx, `SELECT `+shelterColumns+` FROM refugios WHERE email = $1`, email)
}

func (r *SheltersRepo) List(ctx context.Context) ([]shelters.Shelter, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+shelterColumns+` FROM refugios ORDER BY nombre ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]shelters.Shelter, 0)
	for rows.Next() {
		s, err := scanShelter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SheltersRepo) getOne(ctx context.Context, query, arg string) (shelters.Shelter, error) {
	s, err := scanShelter(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return shelters.Shelter{}, shelters.ErrNotFound
	}
	return s, err
}

func scanShelter(row scanner) (shelters.Shelter, error) {
	var s shelters.Shelter
	err := row.Scan(
		&s.ID,
		&s.Nombre,
		&s.Email,
		&s.PasswordHash,
		&s.Telefono,
		&s.Direccion,
		&s.Descripcion,
		&s.Logo,
		textArrayScanner(&s.DocumentosLegales),
		&s.FormularioAdopcion,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}
