package adoptions

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ReferenceResult es el resultado de verificar las referencias de una
// solicitud antes de guardarla.
type ReferenceResult int

const (
	RefOK ReferenceResult = iota
	RefMissingUser
	RefMissingAnimal
	RefMissingShelter
	RefShelterMismatch
)

func (r ReferenceResult) String() string {
	switch r {
	case RefOK:
		return "ok"
	case RefMissingUser:
		return "missing_user"
	case RefMissingAnimal:
		return "missing_animal"
	case RefMissingShelter:
		return "missing_shelter"
	case RefShelterMismatch:
		return "shelter_mismatch"
	}
	return "unknown"
}

// ReferenceError envuelve un resultado distinto de RefOK.
type ReferenceError struct {
	Result ReferenceResult
}

func (e *ReferenceError) Error() string {
	switch e.Result {
	case RefMissingUser:
		return "Usuario no encontrado"
	case RefMissingAnimal:
		return "Animal no encontrado"
	case RefMissingShelter:
		return "Refugio no encontrado"
	case RefShelterMismatch:
		return "El animal no pertenece al refugio indicado"
	}
	return "Referencia inválida"
}

func (e *ReferenceError) Unwrap() error {
	if e.Result == RefShelterMismatch {
		return ErrInvalidInput
	}
	return ErrNotFound
}

type ReferenceChecker struct {
	users    UserLookup
	animals  AnimalLookup
	shelters ShelterLookup
}

func NewReferenceChecker(u UserLookup, a AnimalLookup, s ShelterLookup) *ReferenceChecker {
	return &ReferenceChecker{users: u, animals: a, shelters: s}
}

// Check hace las tres búsquedas en paralelo. El error solo se usa para
// fallas de infraestructura; un id inexistente se reporta en el resultado.
// Prioridad: usuario, animal, refugio, y al final que el animal sea del refugio.
func (c *ReferenceChecker) Check(ctx context.Context, userID, animalID, shelterID string) (ReferenceResult, error) {
	var (
		userFound, animalFound, shelterFound bool
		animal                               AnimalSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := c.users.UserSummary(gctx, userID)
		userFound, err = found(err)
		return err
	})
	g.Go(func() error {
		var err error
		animal, err = c.animals.AnimalSummary(gctx, animalID)
		animalFound, err = found(err)
		return err
	})
	g.Go(func() error {
		_, err := c.shelters.ShelterSummary(gctx, shelterID)
		shelterFound, err = found(err)
		return err
	})
	if err := g.Wait(); err != nil {
		return RefOK, err
	}

	switch {
	case !userFound:
		return RefMissingUser, nil
	case !animalFound:
		return RefMissingAnimal, nil
	case !shelterFound:
		return RefMissingShelter, nil
	case animal.IDRefugio != "" && animal.IDRefugio != shelterID:
		return RefShelterMismatch, nil
	}
	return RefOK, nil
}

func found(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}
