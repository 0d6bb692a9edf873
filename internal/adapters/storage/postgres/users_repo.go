package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-adoption-api/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `id, nombre, email, password, telefono, direccion, foto_perfil, rol, created_at, updated_at`

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO usuarios (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		u.ID,
		u.Nombre,
		u.Email,
		u.PasswordHash,
		u.Telefono,
		u.Direccion,
		u.FotoPerfil,
		u.Rol,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return users.ErrConflict
	}
	return err
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE usuarios
		SET
			nombre = $2,
			telefono = $3,
			direccion = $4,
			foto_perfil = $5,
			rol = $6,
			updated_at = $7
		WHERE id = $1
	`,
		u.ID,
		u.Nombre,
		u.Telefono,
		u.Direccion,
		u.FotoPerfil,
		u.Rol,
		u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM usuarios WHERE id = $1`, id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM usuarios WHERE email = $1`, email)
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) getOne(ctx context.Context, query string, arg string) (users.User, error) {
	var u users.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Nombre,
		&u.Email,
		&u.PasswordHash,
		&u.Telefono,
		&u.Direccion,
		&u.FotoPerfil,
		&u.Rol,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, err
	}
	return u, nil
}
