// Package renderhttp exposes the render API over net/http.
package renderhttp

import (
	"net/http"

	"github.com/nathangurfinkel/cv-app-ng-pdf-generator/adapters/renderapi"
	"github.com/nathangurfinkel/cv-app-ng-pdf-generator/render"
)

// Config configures the HTTP adapter.
type Config = renderapi.Config

// Handler exposes render HTTP endpoints.
type Handler struct {
	controller *renderapi.Controller
}

// NewHandler creates a new HTTP handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{controller: renderapi.NewController(cfg)}
}

// RegisterRoutes registers handlers on a compatible router.
func (h *Handler) RegisterRoutes(router any) {
	switch r := router.(type) {
	case interface{ Handle(string, http.Handler) }:
		r.Handle("/", h)
	case interface {
		HandleFunc(string, func(http.ResponseWriter, *http.Request))
	}:
		r.HandleFunc("/", h.ServeHTTP)
	}
}

// ServeHTTP routes render endpoints.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	if h == nil || h.controller == nil {
		renderapi.WriteError(httpResponse{w: w}, render.NewError(render.KindInternal, "handler is nil", nil))
		return
	}
	h.controller.Serve(httpRequest{r: r}, httpResponse{w: w})
}
