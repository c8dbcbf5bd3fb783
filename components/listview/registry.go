package listview

import (
	"fmt"
	"sync"
)

// PageHook lets packages register page definitions during init().
type PageHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []PageHook
)

// RegisterPageHook registers a hook executed against new registries.
func RegisterPageHook(h PageHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry implements PageRegistry with hook + manifest support.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]PageDefinition
}

// NewRegistry builds a registry preloaded with the built-in page definitions
// and applies global hooks.
func NewRegistry() *Registry {
	reg := &Registry{
		definitions: map[string]PageDefinition{},
	}
	for _, def := range DefaultPageDefinitions() {
		_ = reg.RegisterDefinition(def)
	}
	_ = reg.ApplyHooks()
	return reg
}

// ApplyHooks executes registered page hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDefinition stores page metadata, replacing any previous entry.
func (r *Registry) RegisterDefinition(def PageDefinition) error {
	if def.Code == "" {
		return fmt.Errorf("page definition code is required")
	}
	if def.Resource == "" {
		return fmt.Errorf("page definition %s requires a resource", def.Code)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Code] = def
	return nil
}

// Definition fetches a page definition by code.
func (r *Registry) Definition(code string) (PageDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Definitions returns all registered definitions.
func (r *Registry) Definitions() []PageDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]PageDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	return defs
}
