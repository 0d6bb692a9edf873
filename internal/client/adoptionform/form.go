// Package adoptionform es el flujo de varios pasos del formulario de
// adopción del lado cliente: junta los datos, valida cada paso con las
// mismas reglas que el servidor y envía un único POST multipart.
package adoptionform

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pet-adoption-api/internal/domain/adoptions"
)

type State string

const (
	StateBasicInfo   State = "collecting-basic-info"
	StateHousingInfo State = "collecting-housing-info"
	StateHistoryInfo State = "collecting-history-info"
	StateReady       State = "ready-to-submit"
	StateSubmitting  State = "submitting"
	StateSuccess     State = "success"
	StateFailed      State = "failed"
)

var ErrWrongState = errors.New("action not allowed in current state")

// Campos que valida cada paso antes de avanzar.
var stepFields = map[State][]string{
	StateBasicInfo: {
		adoptions.FieldIDUsuario,
		adoptions.FieldIDRefugio,
		adoptions.FieldIDAnimal,
		adoptions.FieldMotivo,
		adoptions.FieldDocumentoINE,
	},
	StateHousingInfo: {
		adoptions.FieldTipoVivienda,
		adoptions.FieldPermisoMascotasRenta,
		adoptions.FieldFotosEspacioMascota,
	},
	StateHistoryInfo: {
		adoptions.FieldHaAdoptadoAntes,
		adoptions.FieldCantidadMascotasAnteriores,
		adoptions.FieldFotosMascotasAnteriores,
	},
}

var nextState = map[State]State{
	StateBasicInfo:   StateHousingInfo,
	StateHousingInfo: StateHistoryInfo,
	StateHistoryInfo: StateReady,
}

var prevState = map[State]State{
	StateHousingInfo: StateBasicInfo,
	StateHistoryInfo: StateHousingInfo,
	StateReady:       StateHistoryInfo,
}

// Draft son los datos locales. Los archivos son rutas locales (los
// "handles" que devuelve el selector de imágenes).
type Draft struct {
	IDUsuario string
	IDRefugio string
	IDAnimal  string
	Motivo    string

	DocumentoINE []string

	TipoVivienda         string
	PermisoMascotasRenta string
	FotosEspacioMascota  []string

	HaAdoptadoAntes            string
	CantidadMascotasAnteriores int
	FotosMascotasAnteriores    []string
}

// Submission traduce el borrador a lo que validan las reglas compartidas.
func (d Draft) Submission() adoptions.Submission {
	return adoptions.Submission{
		IDUsuario:                  d.IDUsuario,
		IDRefugio:                  d.IDRefugio,
		IDAnimal:                   d.IDAnimal,
		Motivo:                     d.Motivo,
		HaAdoptadoAntes:            d.HaAdoptadoAntes,
		TipoVivienda:               d.TipoVivienda,
		DocumentoINE:               d.DocumentoINE,
		FotosEspacioMascota:        d.FotosEspacioMascota,
		CantidadMascotasAnteriores: d.CantidadMascotasAnteriores,
		FotosMascotasAnteriores:    d.FotosMascotasAnteriores,
		PermisoMascotasRenta:       d.PermisoMascotasRenta,
	}
}

// Receipt es lo que devuelve el servidor al crear la solicitud.
type Receipt struct {
	ID     string
	Estado adoptions.Status
}

type Submitter interface {
	Submit(ctx context.Context, d Draft) (Receipt, error)
}

// Form no persiste borradores: abandonar descarta todo.
// Es seguro llamar Abandon mientras Submit está en curso.
type Form struct {
	mu        sync.Mutex
	state     State
	draft     Draft
	submitter Submitter
	timeout   time.Duration

	cancel  context.CancelFunc
	lastErr error
	receipt *Receipt
}

// New empieza un formulario para el usuario en sesión y el animal elegido.
func New(s Submitter, userID, shelterID, animalID string) *Form {
	return &Form{
		state:     StateBasicInfo,
		submitter: s,
		timeout:   30 * time.Second,
		draft: Draft{
			IDUsuario: userID,
			IDRefugio: shelterID,
			IDAnimal:  animalID,
		},
	}
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft devuelve una copia de los datos actuales.
func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.draft
	d.DocumentoINE = append([]string(nil), d.DocumentoINE...)
	d.FotosEspacioMascota = append([]string(nil), d.FotosEspacioMascota...)
	d.FotosMascotasAnteriores = append([]string(nil), d.FotosMascotasAnteriores...)
	return d
}

// LastError es el error del último envío fallido.
func (f *Form) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

func (f *Form) Receipt() (Receipt, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.receipt == nil {
		return Receipt{}, false
	}
	return *f.receipt, true
}

// Edit aplica un cambio local. Solo mientras se está llenando el formulario.
func (f *Form) Edit(change func(d *Draft)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateBasicInfo, StateHousingInfo, StateHistoryInfo, StateReady:
	default:
		return fmt.Errorf("%w: edit in %s", ErrWrongState, f.state)
	}
	change(&f.draft)
	return nil
}

// Next avanza si el paso actual cumple sus reglas.
func (f *Form) Next() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	to, ok := nextState[f.state]
	if !ok {
		return fmt.Errorf("%w: next from %s", ErrWrongState, f.state)
	}
	if err := adoptions.ValidateFields(f.draft.Submission(), stepFields[f.state]...); err != nil {
		return err
	}
	if to == StateReady {
		if err := adoptions.Validate(f.draft.Submission()); err != nil {
			return err
		}
	}
	f.state = to
	return nil
}

func (f *Form) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	to, ok := prevState[f.state]
	if !ok {
		return fmt.Errorf("%w: back from %s", ErrWrongState, f.state)
	}
	f.state = to
	return nil
}

// Submit envía el formulario. Si falla queda en failed con los datos
// intactos; si sale bien se limpia todo.
func (f *Form) Submit(ctx context.Context) (Receipt, error) {
	f.mu.Lock()
	if f.state != StateReady {
		st := f.state
		f.mu.Unlock()
		return Receipt{}, fmt.Errorf("%w: submit in %s", ErrWrongState, st)
	}
	if err := adoptions.Validate(f.draft.Submission()); err != nil {
		f.mu.Unlock()
		return Receipt{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	f.cancel = cancel
	f.state = StateSubmitting
	f.lastErr = nil
	draft := f.draft
	f.mu.Unlock()

	receipt, err := f.submitter.Submit(ctx, draft)
	cancel()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancel = nil

	if f.state != StateSubmitting {
		// abandonado mientras se enviaba
		return Receipt{}, context.Canceled
	}
	if err != nil {
		f.state = StateFailed
		f.lastErr = err
		return Receipt{}, err
	}

	f.state = StateSuccess
	f.draft = Draft{}
	f.receipt = &receipt
	return receipt, nil
}

// Dismiss cierra el aviso de error y vuelve a ready-to-submit.
func (f *Form) Dismiss() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateFailed {
		return fmt.Errorf("%w: dismiss in %s", ErrWrongState, f.state)
	}
	f.state = StateReady
	return nil
}

// Abandon descarta todo desde cualquier estado. Un envío en curso se
// cancela del lado cliente; el servidor puede haberlo recibido igual.
func (f *Form) Abandon() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.state = StateBasicInfo
	f.draft = Draft{}
	f.lastErr = nil
	f.receipt = nil
}
