package router

import (
	"context"
	"errors"

	"pet-adoption-api/internal/domain/adoptions"
	"pet-adoption-api/internal/domain/animals"
	"pet-adoption-api/internal/domain/shelters"
	"pet-adoption-api/internal/domain/users"
)

// directory expone los otros módulos con la forma que pide adoptions.
type directory struct {
	users    *users.Service
	shelters *shelters.Service
	animals  *animals.Service
}

func (d directory) UserSummary(ctx context.Context, id string) (adoptions.UserSummary, error) {
	u, err := d.users.GetByID(ctx, id)
	if err != nil {
		return adoptions.UserSummary{}, notFound(err, users.ErrNotFound)
	}
	return adoptions.UserSummary{
		ID:         u.ID,
		Nombre:     u.Nombre,
		Email:      u.Email,
		Telefono:   u.Telefono,
		FotoPerfil: u.FotoPerfil,
	}, nil
}

func (d directory) ShelterSummary(ctx context.Context, id string) (adoptions.ShelterSummary, error) {
	sh, err := d.shelters.GetByID(ctx, id)
	if err != nil {
		return adoptions.ShelterSummary{}, notFound(err, shelters.ErrNotFound)
	}
	return adoptions.ShelterSummary{
		ID:        sh.ID,
		Nombre:    sh.Nombre,
		Email:     sh.Email,
		Telefono:  sh.Telefono,
		Direccion: sh.Direccion,
		Logo:      sh.Logo,
	}, nil
}

func (d directory) AnimalSummary(ctx context.Context, id string) (adoptions.AnimalSummary, error) {
	a, err := d.animals.GetByID(ctx, id)
	if err != nil {
		return adoptions.AnimalSummary{}, notFound(err, animals.ErrNotFound)
	}
	return adoptions.AnimalSummary{
		ID:        a.ID,
		IDRefugio: a.IDRefugio,
		Nombre:    a.Nombre,
		Especie:   a.Especie,
		Raza:      a.Raza,
		Fotos:     a.Fotos,
		Adoptado:  a.Adoptado,
	}, nil
}

// MarkAdopted pasa por el service para invalidar el cache del listado.
func (d directory) MarkAdopted(ctx context.Context, animalID string, adopted bool) error {
	_, err := d.animals.SetAdopted(ctx, animalID, adopted)
	return notFound(err, animals.ErrNotFound)
}

func notFound(err, moduleErr error) error {
	if errors.Is(err, moduleErr) {
		return adoptions.ErrNotFound
	}
	return err
}
