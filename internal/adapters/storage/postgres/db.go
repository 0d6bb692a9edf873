package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// schema: mismas "colecciones" que en Mongo, una tabla por documento.
// Los arreglos de archivos son TEXT[].
var schema = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		id           TEXT PRIMARY KEY,
		nombre       TEXT NOT NULL,
		email        TEXT NOT NULL UNIQUE,
		password     TEXT NOT NULL,
		telefono     TEXT NOT NULL DEFAULT '',
		direccion    TEXT NOT NULL DEFAULT '',
		foto_perfil  TEXT NOT NULL DEFAULT '',
		rol          INT  NOT NULL DEFAULT 4,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS refugios (
		id                  TEXT PRIMARY KEY,
		nombre              TEXT NOT NULL,
		email               TEXT NOT NULL UNIQUE,
		password            TEXT NOT NULL,
		telefono            TEXT NOT NULL DEFAULT '',
		direccion           TEXT NOT NULL DEFAULT '',
		descripcion         TEXT NOT NULL DEFAULT '',
		logo                TEXT NOT NULL DEFAULT '',
		documentos_legales  TEXT[] NOT NULL DEFAULT '{}',
		formulario_adopcion TEXT NOT NULL DEFAULT '',
		created_at          TIMESTAMPTZ NOT NULL,
		updated_at          TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS animales (
		id                     TEXT PRIMARY KEY,
		id_refugio             TEXT NOT NULL,
		nombre                 TEXT NOT NULL,
		especie                TEXT NOT NULL,
		raza                   TEXT NOT NULL DEFAULT '',
		edad                   TEXT NOT NULL DEFAULT '',
		sexo                   TEXT NOT NULL DEFAULT '',
		tamano                 TEXT NOT NULL DEFAULT '',
		descripcion            TEXT NOT NULL DEFAULT '',
		historial_medico       TEXT NOT NULL DEFAULT '',
		necesidades_especiales TEXT NOT NULL DEFAULT '',
		esterilizado           BOOLEAN NOT NULL DEFAULT FALSE,
		fotos                  TEXT[] NOT NULL DEFAULT '{}',
		adoptado               BOOLEAN NOT NULL DEFAULT FALSE,
		created_at             TIMESTAMPTZ NOT NULL,
		updated_at             TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS animales_disponibles_idx ON animales (adoptado, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS animales_refugio_idx ON animales (id_refugio)`,
	`CREATE TABLE IF NOT EXISTS solicitudes_adopcion (
		id                           TEXT PRIMARY KEY,
		id_usuario                   TEXT NOT NULL,
		id_animal                    TEXT NOT NULL,
		id_refugio                   TEXT NOT NULL,
		motivo                       TEXT NOT NULL,
		estado                       TEXT NOT NULL,
		documento_ine                TEXT[] NOT NULL DEFAULT '{}',
		ha_adoptado_antes            TEXT NOT NULL,
		cantidad_mascotas_anteriores INT  NOT NULL DEFAULT 0,
		fotos_mascotas_anteriores    TEXT[] NOT NULL DEFAULT '{}',
		tipo_vivienda                TEXT NOT NULL,
		permiso_mascotas_renta       TEXT NOT NULL DEFAULT '',
		fotos_espacio_mascota        TEXT[] NOT NULL DEFAULT '{}',
		fecha_solicitud              TIMESTAMPTZ NOT NULL,
		updated_at                   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS solicitudes_refugio_idx ON solicitudes_adopcion (id_refugio, estado, fecha_solicitud DESC)`,
	`CREATE INDEX IF NOT EXISTS solicitudes_usuario_idx ON solicitudes_adopcion (id_usuario, fecha_solicitud DESC)`,
}

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// textArray evita mandar NULL a columnas TEXT[] NOT NULL.
func textArray(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// textArrayScanner escanea TEXT[] a []string; database/sql no sabe hacerlo solo.
func textArrayScanner(dst *[]string) sql.Scanner {
	return pgtype.NewMap().SQLScanner(dst)
}
