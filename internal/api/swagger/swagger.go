// Package swagger отдает OpenAPI-описание HTTP API заметок.
package swagger

import (
	_ "embed"
	"net/http"
)

// SpecPath путь, по которому доступно описание API
const SpecPath = "/swagger.json"

//go:embed openapi.json
var spec []byte

// Spec возвращает встроенное описание API
func Spec() []byte {
	return spec
}

// Register добавляет маршрут описания API в указанный mux.
// Маршрут не требует авторизации, чтобы внешние инструменты могли прочитать схему.
func Register(mux *http.ServeMux) {
	mux.HandleFunc("GET "+SpecPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(spec)
	})
}
