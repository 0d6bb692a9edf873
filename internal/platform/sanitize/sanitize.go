package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text quita cualquier markup de un texto libre (motivo, descripciones)
// y recorta espacios. Las entidades que bluemonday escapa se devuelven
// a su forma original para no guardar "&amp;" en vez de "&".
func Text(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
