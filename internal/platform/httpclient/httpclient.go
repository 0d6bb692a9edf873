package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout es el tope que usa la app para no quedar colgada.
const DefaultTimeout = 30 * time.Second

const maxResponseBytes = 1 << 20

// Client habla con la API: JSON y formularios multipart.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New crea un Client. baseURL vacío obliga a usar URLs absolutas.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{HTTP: &http.Client{Timeout: timeout}}

	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		if _, err := url.ParseRequestURI(baseURL); err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
		c.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return c, nil
}

// HTTPError es una respuesta fuera de 2xx. Message viene del sobre
// {success:false, message} cuando la API lo manda.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http %d", e.StatusCode)
}

// DoJSON manda in como JSON (si no es nil) y decodifica la respuesta en out.
func (c *Client) DoJSON(ctx context.Context, method, pathOrURL string, headers map[string]string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
		headers = withHeader(headers, "Content-Type", "application/json")
	}
	return c.do(ctx, method, pathOrURL, headers, body, out)
}

// FilePart es un archivo local que se adjunta bajo Field.
type FilePart struct {
	Field string
	Path  string
}

// Multipart es el formulario a enviar. Los archivos se mandan en orden.
type Multipart struct {
	Fields map[string]string
	Files  []FilePart
}

// PostMultipart arma el formulario en memoria y lo envía en un solo POST.
func (c *Client) PostMultipart(ctx context.Context, pathOrURL string, headers map[string]string, form Multipart, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range form.Fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("httpclient: write field %s: %w", k, err)
		}
	}
	for _, f := range form.Files {
		if err := attach(mw, f); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("httpclient: close multipart: %w", err)
	}

	headers = withHeader(headers, "Content-Type", mw.FormDataContentType())
	return c.do(ctx, http.MethodPost, pathOrURL, headers, &buf, out)
}

func attach(mw *multipart.Writer, f FilePart) error {
	src, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("httpclient: open %s: %w", f.Path, err)
	}
	defer src.Close()

	dst, err := mw.CreateFormFile(f.Field, filepath.Base(f.Path))
	if err != nil {
		return fmt.Errorf("httpclient: create part %s: %w", f.Field, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("httpclient: copy %s: %w", f.Path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, pathOrURL string, headers map[string]string, body io.Reader, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		if strings.TrimSpace(k) != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		herr := &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		var env struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &env) == nil {
			herr.Message = env.Message
		}
		return herr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	switch {
	case pathOrURL == "":
		return "", errors.New("httpclient: empty url")
	case strings.HasPrefix(pathOrURL, "http://"), strings.HasPrefix(pathOrURL, "https://"):
		return pathOrURL, nil
	case c.BaseURL == "":
		return "", errors.New("httpclient: relative path requires BaseURL")
	}
	return c.BaseURL + "/" + strings.TrimLeft(pathOrURL, "/"), nil
}

func withHeader(h map[string]string, k, v string) map[string]string {
	out := make(map[string]string, len(h)+1)
	for hk, hv := range h {
		out[hk] = hv
	}
	out[k] = v
	return out
}
