package execution

import (
	"errors"
	"fmt"

	"tse2e/internal/annotations"
	"tse2e/internal/framework"
	"tse2e/internal/tensor"
)

// DirectBackend is the name of the direct execution config
const DirectBackend = "direct"

// DirectConfig runs modules directly in-process. It is the reference
// execution that compiled backends are compared against.
//
// Before handing out a handle, the module's declared annotations are
// extracted; invalid declarations fail compilation. Calls to forward are
// checked against its argument annotations.
type DirectConfig struct{}

// NewDirectConfig creates a new DirectConfig
func NewDirectConfig() *DirectConfig {
	return &DirectConfig{}
}

// Name returns the backend name
func (c *DirectConfig) Name() string {
	return DirectBackend
}

// CompileAndRun builds a fresh module and wraps it in a checked handle.
func (c *DirectConfig) CompileAndRun(factory framework.ModuleFactory) (framework.Handle, error) {
	module := factory()
	if module == nil {
		return nil, &CompileError{Err: errors.New("module factory returned nil")}
	}

	ca := annotations.NewClassAnnotator()
	ct := module.ClassType()
	if ct != nil {
		if err := annotations.Extract(ct, ca); err != nil {
			return nil, &CompileError{Err: fmt.Errorf("%s: %w", ct.QualifiedName, err)}
		}
	}

	return &directHandle{module: module, classType: ct, annotator: ca}, nil
}

type directHandle struct {
	module    framework.Module
	classType *annotations.ClassType
	annotator *annotations.ClassAnnotator
}

func (h *directHandle) Forward(args ...*tensor.Tensor) (*tensor.Tensor, error) {
	if err := h.checkArgs("forward", args); err != nil {
		return nil, err
	}
	return h.module.Forward(args...)
}

func (h *directHandle) checkArgs(method string, args []*tensor.Tensor) error {
	if h.classType == nil {
		return nil
	}
	m, ok := h.annotator.MethodAnnotation(h.classType, method)
	if !ok || m.ArgAnnotations == nil {
		return nil
	}

	// The first annotation describes self
	expected := len(m.ArgAnnotations) - 1
	if len(args) != expected {
		return &InvocationError{Method: method, Err: fmt.Errorf("expected %d arguments, got %d", expected, len(args))}
	}
	for i, arg := range args {
		if arg == nil {
			return &InvocationError{Method: method, Err: fmt.Errorf("argument %d is nil", i+1)}
		}
		if err := m.ArgAnnotations[i+1].Check(arg); err != nil {
			return &InvocationError{Method: method, Err: fmt.Errorf("argument %d: %w", i+1, err)}
		}
	}
	return nil
}

// ConfigName returns the backend name of cfg, or "custom" when it has none.
func ConfigName(cfg framework.Config) string {
	if named, ok := cfg.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "custom"
}

// NewConfig returns the execution config for the named backend.
func NewConfig(name string) (framework.Config, error) {
	switch name {
	case DirectBackend:
		return NewDirectConfig(), nil
	}
	return nil, fmt.Errorf("unknown backend %q (available: %s)", name, DirectBackend)
}
