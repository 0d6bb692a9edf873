package intake

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/ports/files"
)

var (
	// ErrMalformed: el cuerpo no es multipart o excede el tamaño permitido.
	ErrMalformed = errors.New("malformed multipart request")
)

const defaultMaxBytes = 25 << 20

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// Intake recibe formularios multipart, guarda cada archivo bajo un nombre
// generado y devuelve esos nombres al handler. No es atómica: si el handler
// rechaza la solicitud después, debe llamar a Cleanup.
type Intake struct {
	store    files.Storage
	log      logger.Logger
	maxBytes int64
	now      func() time.Time
}

func New(store files.Storage, log logger.Logger, maxBytes int64) *Intake {
	if log == nil {
		log = logger.Nop()
	}
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &Intake{
		store:    store,
		log:      log,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// Result contiene los campos de texto y los nombres generados por campo,
// en el orden en que llegaron.
type Result struct {
	values map[string][]string
	files  map[string][]string
	order  []string
}

func (r *Result) Value(field string) string {
	if r == nil {
		return ""
	}
	v := r.values[field]
	if len(v) == 0 {
		return ""
	}
	return strings.TrimSpace(v[0])
}

func (r *Result) Files(field string) []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.files[field]))
	copy(out, r.files[field])
	return out
}

// File devuelve el primer archivo del campo o "".
func (r *Result) File(field string) string {
	if r == nil || len(r.files[field]) == 0 {
		return ""
	}
	return r.files[field][0]
}

// All devuelve todos los archivos guardados en este request.
func (r *Result) All() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Parse lee el formulario y guarda los archivos de fileFields.
// Los archivos de otros campos se ignoran.
func (in *Intake) Parse(w http.ResponseWriter, r *http.Request, fileFields ...string) (*Result, error) {
	if !strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data") {
		return nil, fmt.Errorf("%w: content type must be multipart/form-data", ErrMalformed)
	}

	r.Body = http.MaxBytesReader(w, r.Body, in.maxBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	res := &Result{
		values: map[string][]string{},
		files:  map[string][]string{},
	}
	for k, v := range r.MultipartForm.Value {
		res.values[k] = v
	}

	for _, field := range fileFields {
		for _, fh := range r.MultipartForm.File[field] {
			name, err := in.saveFile(r.Context(), fh)
			if err != nil {
				in.Cleanup(r.Context(), res.order...)
				return nil, fmt.Errorf("store %s: %w", field, err)
			}
			res.files[field] = append(res.files[field], name)
			res.order = append(res.order, name)
		}
	}

	return res, nil
}

func (in *Intake) saveFile(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := GenerateName(fh.Filename, in.now())
	if err := in.store.Put(ctx, name, src, fh.Size, files.ContentType(name)); err != nil {
		return "", err
	}
	return name, nil
}

// Cleanup borra archivos best-effort: cada falla se loguea y se sigue.
func (in *Intake) Cleanup(ctx context.Context, names ...string) {
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		if err := in.store.Delete(ctx, n); err != nil && !errors.Is(err, files.ErrNotFound) {
			in.log.Warn("upload cleanup failed", map[string]any{
				"file": n,
				"err":  err,
			})
		}
	}
}

// GenerateName arma "<unix millis>-<sufijo aleatorio><.ext>".
// La extensión se normaliza a minúsculas y se descarta si no es alfanumérica.
func GenerateName(original string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), suffix, extensionOf(original))
}

func extensionOf(original string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(original)))
	if !extPattern.MatchString(ext) {
		return ""
	}
	return ext
}
