package httpx

import (
	"encoding/json"
	"net/http"
)

// writeJSON vivía duplicado en cada módulo; con cuatro módulos de dominio
// ya conviene tenerlo en un solo lugar.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Failure es el sobre de error que consume la app móvil.
type Failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Failure{Success: false, Message: message})
}

// DecodeJSON decodifica el body rechazando campos desconocidos.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
