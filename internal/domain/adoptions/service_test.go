package adoptions

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	mu        sync.Mutex
	byID      map[string]Request
	createErr error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Request{}}
}

func (r *testRepo) Create(ctx context.Context, req Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[req.ID] = req
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok {
		return Request{}, ErrNotFound
	}
	return req, nil
}

func (r *testRepo) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if req.Estado != from {
		return ErrInvalidTransition
	}
	req.Estado = to
	req.UpdatedAt = at
	r.byID[id] = req
	return nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]Request, error) {
	return r.filter(func(req Request) bool { return req.IDUsuario == userID }), nil
}

func (r *testRepo) ListByShelter(ctx context.Context, shelterID string, status Status) ([]Request, error) {
	return r.filter(func(req Request) bool {
		return req.IDRefugio == shelterID && (status == "" || req.Estado == status)
	}), nil
}

func (r *testRepo) filter(keep func(Request) bool) []Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Request, 0)
	for _, req := range r.byID {
		if keep(req) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaSolicitud.After(out[j].FechaSolicitud) })
	return out
}

type testDirectory struct {
	mu         sync.Mutex
	users      map[string]UserSummary
	animals    map[string]AnimalSummary
	shelters   map[string]ShelterSummary
	lookupErr  error
	adoptErr   error
	adoptCalls int
}

func newTestDirectory() *testDirectory {
	return &testDirectory{
		users:    map[string]UserSummary{"u1": {ID: "u1", Nombre: "Ana"}},
		animals:  map[string]AnimalSummary{"a1": {ID: "a1", IDRefugio: "r1", Nombre: "Firulais"}, "a2": {ID: "a2", IDRefugio: "r2", Nombre: "Michi"}},
		shelters: map[string]ShelterSummary{"r1": {ID: "r1", Nombre: "Patitas"}, "r2": {ID: "r2", Nombre: "Huellitas"}},
	}
}

func (d *testDirectory) UserSummary(ctx context.Context, id string) (UserSummary, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.lookupErr != nil {
		return UserSummary{}, d.lookupErr
	}
	u, ok := d.users[id]
	if !ok {
		return UserSummary{}, ErrNotFound
	}
	return u, nil
}

func (d *testDirectory) AnimalSummary(ctx context.Context, id string) (AnimalSummary, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.animals[id]
	if !ok {
		return AnimalSummary{}, ErrNotFound
	}
	return a, nil
}

func (d *testDirectory) ShelterSummary(ctx context.Context, id string) (ShelterSummary, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.shelters[id]
	if !ok {
		return ShelterSummary{}, ErrNotFound
	}
	return s, nil
}

func (d *testDirectory) MarkAdopted(ctx context.Context, animalID string, adopted bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.adoptCalls++
	if d.adoptErr != nil {
		return d.adoptErr
	}
	a := d.animals[animalID]
	a.Adoptado = adopted
	d.animals[animalID] = a
	return nil
}

type testEvents struct {
	mu      sync.Mutex
	created []string
	changed []Status
}

func (e *testEvents) PublishRequestCreated(ctx context.Context, r Request) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.created = append(e.created, r.ID)
	return nil
}

func (e *testEvents) PublishStatusChanged(ctx context.Context, r Request, from Status) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.changed = append(e.changed, r.Estado)
	return nil
}

type fixture struct {
	svc    *Service
	repo   *testRepo
	dir    *testDirectory
	events *testEvents
}

func newFixture() fixture {
	repo := newTestRepo()
	dir := newTestDirectory()
	events := &testEvents{}
	svc := NewService(repo, Deps{
		Users:    dir,
		Animals:  dir,
		Shelters: dir,
		Adopter:  dir,
		Events:   events,
	})
	var clock sync.Mutex
	tick := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock.Lock()
		defer clock.Unlock()
		tick = tick.Add(time.Second)
		return tick
	}
	return fixture{svc: svc, repo: repo, dir: dir, events: events}
}

// -------------------------
// Submit
// -------------------------

func TestSubmit_CreatesPendingRequest(t *testing.T) {
	f := newFixture()

	req, err := f.svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, StatusPending, req.Estado)
	assert.Equal(t, "Quiero darle un hogar", req.Motivo)
	assert.Equal(t, []string{"ine-frente.jpg", "ine-reverso.jpg"}, req.DocumentoINE)
	assert.NotNil(t, req.FotosMascotasAnteriores)
	assert.Len(t, f.repo.byID, 1)
	assert.Equal(t, []string{req.ID}, f.events.created)
}

func TestSubmit_OneIDSideRejected(t *testing.T) {
	f := newFixture()
	s := validSubmission()
	s.DocumentoINE = []string{"solo-frente.jpg"}

	_, err := f.svc.Submit(context.Background(), s)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, MsgINEBothSides, ve.Message)
	assert.Empty(t, f.repo.byID)
	assert.Empty(t, f.events.created)
}

func TestSubmit_ReferenceFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Submission)
		want   ReferenceResult
		is     error
	}{
		{"unknown user", func(s *Submission) { s.IDUsuario = "u9" }, RefMissingUser, ErrNotFound},
		{"unknown animal", func(s *Submission) { s.IDAnimal = "a9" }, RefMissingAnimal, ErrNotFound},
		{"unknown shelter", func(s *Submission) { s.IDRefugio = "r9" }, RefMissingShelter, ErrNotFound},
		{"animal of another shelter", func(s *Submission) { s.IDAnimal = "a2" }, RefShelterMismatch, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			s := validSubmission()
			tt.mutate(&s)

			_, err := f.svc.Submit(context.Background(), s)

			var re *ReferenceError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.want, re.Result)
			assert.ErrorIs(t, err, tt.is)
			assert.Empty(t, f.repo.byID)
		})
	}
}

func TestSubmit_InfrastructureErrors(t *testing.T) {
	f := newFixture()
	f.dir.lookupErr = errors.New("connection refused")

	_, err := f.svc.Submit(context.Background(), validSubmission())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	f = newFixture()
	f.repo.createErr = errors.New("write failed")
	_, err = f.svc.Submit(context.Background(), validSubmission())
	assert.EqualError(t, err, "write failed")
	assert.Empty(t, f.events.created)
}

func TestSubmit_EncodedMarkupInMotivoNormalizedOnce(t *testing.T) {
	f := newFixture()
	s := validSubmission()
	s.Motivo = "&lt;b&gt;"

	req, err := f.svc.Submit(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "<b>", req.Motivo)
	assert.Equal(t, req.Motivo, f.repo.byID[req.ID].Motivo)
}

func TestSubmit_DuplicatesAllowed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, validSubmission())
	require.NoError(t, err)
	second, err := f.svc.Submit(ctx, validSubmission())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, f.repo.byID, 2)
}

// -------------------------
// Moderation
// -------------------------

func TestSetStatus_ApproveRemovesFromPendingAndAdoptsAnimal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, validSubmission())
	require.NoError(t, err)

	pending, err := f.svc.ListPending(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NotNil(t, pending[0].Usuario)
	assert.Equal(t, "Ana", pending[0].Usuario.Nombre)
	require.NotNil(t, pending[0].Animal)
	assert.Equal(t, "Firulais", pending[0].Animal.Nombre)
	assert.Nil(t, pending[0].Refugio)

	updated, err := f.svc.SetStatus(ctx, req.ID, "aprobada")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, updated.Estado)
	assert.True(t, f.dir.animals["a1"].Adoptado)
	assert.Equal(t, []Status{StatusApproved}, f.events.changed)

	pending, err = f.svc.ListPending(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSetStatus_RejectDoesNotTouchAnimal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, validSubmission())
	require.NoError(t, err)

	updated, err := f.svc.SetStatus(ctx, req.ID, "rechazada")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, updated.Estado)
	assert.Zero(t, f.dir.adoptCalls)
}

func TestSetStatus_Errors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, validSubmission())
	require.NoError(t, err)

	_, err = f.svc.SetStatus(ctx, req.ID, "cancelada")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.SetStatus(ctx, "missing", "aprobada")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.SetStatus(ctx, req.ID, "pendiente")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.SetStatus(ctx, req.ID, "aprobada")
	require.NoError(t, err)

	// estados finales
	_, err = f.svc.SetStatus(ctx, req.ID, "rechazada")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.svc.SetStatus(ctx, req.ID, "aprobada")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusApproved, f.repo.byID[req.ID].Estado)
}

func TestSetStatus_AdoptFailureCompensates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, validSubmission())
	require.NoError(t, err)

	f.dir.adoptErr = errors.New("animals store down")
	_, err = f.svc.SetStatus(ctx, req.ID, "aprobada")
	require.Error(t, err)

	assert.Equal(t, StatusPending, f.repo.byID[req.ID].Estado)
	assert.Empty(t, f.events.changed)

	pending, err := f.svc.ListPending(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestSetStatus_AnimalGoneReportsAnimal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, validSubmission())
	require.NoError(t, err)

	f.dir.adoptErr = ErrNotFound
	_, err = f.svc.SetStatus(ctx, req.ID, "aprobada")
	assert.ErrorIs(t, err, ErrAnimalNotFound)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, StatusPending, f.repo.byID[req.ID].Estado)
}

func TestSetStatus_ConcurrentModerationSingleWinner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, validSubmission())
	require.NoError(t, err)

	const workers = 50
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
		errs []error
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		status := "aprobada"
		if i%2 == 1 {
			status = "rechazada"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.svc.SetStatus(ctx, req.ID, status)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
				return
			}
			errs = append(errs, err)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, wins)
	require.Len(t, errs, workers-1)
	for _, err := range errs {
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}

	final := f.repo.byID[req.ID].Estado
	assert.True(t, final == StatusApproved || final == StatusRejected)
	assert.Len(t, f.events.changed, 1)
	if final == StatusApproved {
		assert.Equal(t, 1, f.dir.adoptCalls)
	} else {
		assert.Zero(t, f.dir.adoptCalls)
	}
}

func TestListings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, validSubmission())
	require.NoError(t, err)
	second, err := f.svc.Submit(ctx, validSubmission())
	require.NoError(t, err)
	_, err = f.svc.SetStatus(ctx, first.ID, "rechazada")
	require.NoError(t, err)

	byUser, err := f.svc.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, second.ID, byUser[0].Request.ID)
	require.NotNil(t, byUser[0].Refugio)
	assert.Equal(t, "Patitas", byUser[0].Refugio.Nombre)
	assert.Nil(t, byUser[0].Usuario)

	rejected, err := f.svc.ListByShelter(ctx, "r1", "rechazada")
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, first.ID, rejected[0].Request.ID)

	all, err := f.svc.ListByShelter(ctx, "r1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.ListByShelter(ctx, "r1", "archivada")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// referencia huérfana: el usuario ya no existe
	delete(f.dir.users, "u1")
	all, err = f.svc.ListByShelter(ctx, "r1", "")
	require.NoError(t, err)
	assert.Nil(t, all[0].Usuario)
}
