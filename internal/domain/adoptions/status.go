package adoptions

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending  Status = "pendiente"
	StatusApproved Status = "aprobada"
	StatusRejected Status = "rechazada"
)

// transitions lista los únicos cambios de estado válidos.
// aprobada y rechazada son finales.
var transitions = map[Status][]Status{
	StatusPending: {StatusApproved, StatusRejected},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: estado %q", ErrInvalidInput, v)
	}
	return s, nil
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
