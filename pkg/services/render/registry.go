package render

import (
	"fmt"
	"sync"

	"github.com/bi-tools/reportsmith/pkg/models/domain"
)

// Renderer turns an assembled report into a document body.
type Renderer interface {
	// Render produces the document for the given report. Rendering is pure:
	// the same report always yields the same output.
	Render(report domain.Report) (string, error)
	// Ext returns the file extension for documents of this format, dot included.
	Ext() string
}

// RendererFactory is a function type that creates a Renderer
type RendererFactory func() (Renderer, error)

// Registry manages output format renderer factories
type Registry interface {
	// Register adds a new renderer factory for the format
	Register(format string, factory RendererFactory) error
	// Create instantiates a renderer for the specified format
	Create(format string) (Renderer, error)
	// ListFormats returns a list of registered formats
	ListFormats() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]RendererFactory
}

// NewRegistry creates a registry pre-seeded with the given factories.
func NewRegistry(factories map[string]RendererFactory) Registry {
	seeded := make(map[string]RendererFactory, len(factories))
	for format, factory := range factories {
		seeded[format] = factory
	}
	return &registry{factories: seeded}
}

func (r *registry) Register(format string, factory RendererFactory) error {
	if format == "" {
		return fmt.Errorf("format name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[format]; exists {
		return fmt.Errorf("format %q is already registered", format)
	}

	r.factories[format] = factory
	return nil
}

func (r *registry) Create(format string) (Renderer, error) {
	r.mu.RLock()
	factory, exists := r.factories[format]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("format %q is not registered", format)
	}

	return factory()
}

func (r *registry) ListFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.factories))
	for format := range r.factories {
		formats = append(formats, format)
	}
	return formats
}
