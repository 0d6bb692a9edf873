package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-adoption-api/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `id, id_refugio, nombre, especie, raza, edad, sexo, tamano,
	descripcion, historial_medico, necesidades_especiales, esterilizado,
	fotos, adoptado, created_at, updated_at`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animales (`+animalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		a.ID,
		a.IDRefugio,
		a.Nombre,
		a.Especie,
		a.Raza,
		a.Edad,
		a.Sexo,
		a.Tamano,
		a.Descripcion,
		a.HistorialMedico,
		a.NecesidadesEspeciales,
		a.Esterilizado,
		textArray(a.Fotos),
		a.Adoptado,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	a, err := scanAnimal(r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animales WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, err
}

func (r *AnimalsRepo) ListAvailable(ctx context.Context) ([]animals.Animal, error) {
	return r.list(ctx, `SELECT `+animalColumns+` FROM animales WHERE adoptado = FALSE ORDER BY created_at DESC`)
}

func (r *AnimalsRepo) ListByShelter(ctx context.Context, shelterID string) ([]animals.Animal, error) {
	return r.list(ctx, `SELECT `+animalColumns+` FROM animales WHERE id_refugio = $1 ORDER BY created_at DESC`, shelterID)
}

func (r *AnimalsRepo) SetAdopted(ctx context.Context, id string, adopted bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animales SET adoptado = $2, updated_at = $3 WHERE id = $1
	`, id, adopted, time.Now().UTC())
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) list(ctx context.Context, query string, args ...any) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAnimal(row scanner) (animals.Animal, error) {
	var a animals.Animal
	err := row.Scan(
		&a.ID,
		&a.IDRefugio,
		&a.Nombre,
		&a.Especie,
		&a.Raza,
		&a.Edad,
		&a.Sexo,
		&a.Tamano,
		&a.Descripcion,
		&a.HistorialMedico,
		&a.NecesidadesEspeciales,
		&a.Esterilizado,
		textArrayScanner(&a.Fotos),
		&a.Adoptado,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
