// Package adapter converts canonical schemas into the native schema objects
// of a specific execution engine.
//
// Adapters only ever read the canonical schema. A failed conversion is
// reported as a *ConversionError and leaves the canonical schema intact.
package adapter

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/siegeai/siegeschema/schema"
)

var (
	ErrConversion     = errors.New("could not convert schema")
	ErrUnknownAdapter = errors.New("unknown adapter")
	ErrDuplicate      = errors.New("adapter already registered")
)

// Native is an engine-specific schema produced by an Adapter.
type Native interface {
	// Render returns the engine's own textual representation.
	Render() ([]byte, error)
}

type Adapter interface {
	Name() string
	// FileExt is the extension, dot included, of rendered native files.
	FileExt() string
	Convert(s schema.Schema) (Native, error)
}

// ConversionError reports where and why a canonical schema could not be
// converted. Path locates the offending node, e.g. "$.a.b[]".
type ConversionError struct {
	Adapter string
	Path    string
	Err     error
}

func (e *ConversionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Adapter, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Adapter, e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// Errorf builds a *ConversionError for adapter at path.
func Errorf(adapter, path, format string, args ...any) error {
	return &ConversionError{Adapter: adapter, Path: path, Err: fmt.Errorf(format, args...)}
}

// Root checks that s may be converted at all and reports its kind. Anything
// but a struct or an array yields a *ConversionError wrapping the
// *schema.InvalidRootError.
func Root(adapter string, s schema.Schema) (schema.SchemaKind, error) {
	k, err := schema.RootKind(s)
	if err != nil {
		return 0, &ConversionError{Adapter: adapter, Path: "$", Err: err}
	}
	return k, nil
}

// FieldPath and ElementPath extend a node path.
func FieldPath(parent, name string) string {
	return parent + "." + name
}

func ElementPath(parent string) string {
	return parent + "[]"
}

// ConvertJSON parses canonical schema JSON and converts it with a.
func ConvertJSON(a Adapter, raw []byte) (Native, error) {
	s, err := schema.Parse(raw)
	if err != nil {
		return nil, &ConversionError{Adapter: a.Name(), Err: err}
	}
	return a.Convert(s)
}

// Render converts s with a and renders the result.
func Render(a Adapter, s schema.Schema) ([]byte, error) {
	n, err := a.Convert(s)
	if err != nil {
		return nil, err
	}
	bs, err := n.Render()
	if err != nil {
		return nil, &ConversionError{Adapter: a.Name(), Err: err}
	}
	return bs, nil
}

// Registry looks adapters up by name. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

func NewRegistry(adapters ...Adapter) (*Registry, error) {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Register(a Adapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.adapters[a.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, a.Name())
	}
	r.adapters[a.Name()] = a
	return nil
}

func (r *Registry) Lookup(name string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAdapter, name)
	}
	return a, nil
}

// Names lists registered adapters in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.adapters))
	for n := range r.adapters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
