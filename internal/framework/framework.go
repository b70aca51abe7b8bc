// Package framework defines the contracts between test cases, the modules
// they exercise, and the execution configs that run those modules.
package framework

import (
	"tse2e/internal/annotations"
	"tse2e/internal/tensor"
)

// Module is a unit of computation with a forward entry point. Modules
// describe their class so that their export and argument annotations can be
// extracted before they run.
type Module interface {
	ClassType() *annotations.ClassType
	Forward(args ...*tensor.Tensor) (*tensor.Tensor, error)
}

// Handle is the executable form of a module produced by a Config.
type Handle interface {
	Forward(args ...*tensor.Tensor) (*tensor.Tensor, error)
}

// ModuleFactory produces a fresh module instance.
type ModuleFactory func() Module

// Invocation drives a module handle. A returned error or a panic marks the
// test case as failed.
type Invocation func(module Handle, tu *TestUtils) error

// Config turns a module factory into an executable handle.
type Config interface {
	CompileAndRun(factory ModuleFactory) (Handle, error)
}
