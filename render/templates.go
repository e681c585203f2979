package render

import (
	"fmt"
	"sync"
)

// DefaultTemplateName is used when a request carries no template.
const DefaultTemplateName = "classic"

// TemplateRegistry stores the CV template names the frontend print page
// knows how to render. Registration order is preserved for listing.
type TemplateRegistry struct {
	mu    sync.RWMutex
	names []string
	index map[string]struct{}
}

// NewTemplateRegistry creates an empty registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{index: make(map[string]struct{})}
}

// DefaultTemplates returns a registry with the built-in CV templates.
func DefaultTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()
	for _, name := range []string{
		"classic",
		"modern",
		"functional",
		"combination",
		"reverse-chronological",
	} {
		// Names are unique literals, registration cannot fail.
		_ = registry.Register(name)
	}
	return registry
}

// Register adds a template name.
func (r *TemplateRegistry) Register(name string) error {
	if name == "" {
		return NewError(KindValidation, "template name is required", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[name]; exists {
		return NewError(KindValidation, fmt.Sprintf("template %q already registered", name), nil)
	}
	r.index[name] = struct{}{}
	r.names = append(r.names, name)
	return nil
}

// Has reports whether a template name is registered.
func (r *TemplateRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.index[name]
	return ok
}

// Names lists registered templates in registration order.
func (r *TemplateRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
