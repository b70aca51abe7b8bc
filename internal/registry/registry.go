// Package registry collects the end-to-end test cases of a process.
package registry

import (
	"errors"
	"fmt"

	"tse2e/internal/domain"
	"tse2e/internal/framework"
)

var (
	// ErrDuplicateName is matched by errors returned when a name is registered twice.
	ErrDuplicateName = errors.New("registry: duplicate test case name")

	// ErrInvalidCase is returned for cases without a name, factory or invocation.
	ErrInvalidCase = errors.New("registry: invalid test case")
)

// DuplicateNameError reports a second registration of Name.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("test case %q is already registered", e.Name)
}

// Is makes DuplicateNameError match ErrDuplicateName.
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// Registry is an ordered, append-only collection of test cases.
// It is not safe for concurrent registration.
type Registry struct {
	cases []domain.TestCase
	index map[string]int
}

// New creates an empty Registry
func New() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register appends a test case. The registry is unchanged when an error is returned.
func (r *Registry) Register(name string, factory framework.ModuleFactory, invocation framework.Invocation) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCase)
	}
	if factory == nil {
		return fmt.Errorf("%w: %q has no module factory", ErrInvalidCase, name)
	}
	if invocation == nil {
		return fmt.Errorf("%w: %q has no invocation", ErrInvalidCase, name)
	}
	if _, exists := r.index[name]; exists {
		return &DuplicateNameError{Name: name}
	}

	r.index[name] = len(r.cases)
	r.cases = append(r.cases, domain.TestCase{
		Name:          name,
		ModuleFactory: factory,
		Invocation:    invocation,
	})
	return nil
}

// MustRegister is like Register but panics on error. Suite definitions use it
// at load time where a failed registration is a programming error.
func (r *Registry) MustRegister(name string, factory framework.ModuleFactory, invocation framework.Invocation) {
	if err := r.Register(name, factory, invocation); err != nil {
		panic(err)
	}
}

// All returns the registered cases in registration order.
// The returned slice is a copy.
func (r *Registry) All() []domain.TestCase {
	out := make([]domain.TestCase, len(r.cases))
	copy(out, r.cases)
	return out
}

// Get looks up a case by name
func (r *Registry) Get(name string) (domain.TestCase, bool) {
	i, ok := r.index[name]
	if !ok {
		return domain.TestCase{}, false
	}
	return r.cases[i], true
}

// Len returns the number of registered cases
func (r *Registry) Len() int {
	return len(r.cases)
}

// Names returns the registered case names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.cases))
	for i, tc := range r.cases {
		names[i] = tc.Name
	}
	return names
}
