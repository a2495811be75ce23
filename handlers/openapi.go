package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed doc.json
var openAPIDoc []byte

// ServeOpenAPIDoc serves the OpenAPI document consumed by the swagger UI.
func ServeOpenAPIDoc(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPIDoc)
}
