// Package renderrouter exposes the render API through goliatone/go-router
// so the service can mount on a Fiber (or net/http) backed router.
package renderrouter

import (
	"github.com/goliatone/go-router"

	"github.com/nathangurfinkel/cv-app-ng-pdf-generator/adapters/renderapi"
	"github.com/nathangurfinkel/cv-app-ng-pdf-generator/render"
)

// Config configures the go-router adapter.
type Config = renderapi.Config

// Handler exposes render routes for go-router.
type Handler struct {
	controller *renderapi.Controller
}

// NewHandler creates a go-router handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{controller: renderapi.NewController(cfg)}
}

// RegisterRoutes registers routes on a compatible go-router router.
func (h *Handler) RegisterRoutes(target any) {
	r, ok := target.(routeRegistrar)
	if !ok {
		return
	}

	r.Get("/", h.Handle)
	r.Get("/health", h.Handle)
	r.Get("/pdf/templates", h.Handle)
	r.Post("/pdf/generate", h.Handle)
	r.Get("/og/roast", h.Handle)
}

// Handle executes the shared render workflow.
func (h *Handler) Handle(c router.Context) error {
	if c == nil {
		return nil
	}
	if h == nil || h.controller == nil {
		renderapi.WriteError(routerResponse{ctx: c}, render.NewError(render.KindInternal, "handler is nil", nil))
		return nil
	}
	h.controller.Serve(routerRequest{ctx: c}, routerResponse{ctx: c})
	return nil
}

type routeRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}
