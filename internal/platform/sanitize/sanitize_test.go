package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  Quiero darle un hogar ", "Quiero darle un hogar"},
		{"tags removed", "<b>Hola</b><script>alert(1)</script>", "Hola"},
		{"ampersand kept", "Perros & gatos", "Perros & gatos"},
		{"accents kept", "Tengo jardín y tiempo", "Tengo jardín y tiempo"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}
