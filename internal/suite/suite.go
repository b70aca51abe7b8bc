// Package suite holds the end-to-end test cases. Each file defines its
// modules and registers its cases through a register function listed here.
package suite

import (
	"fmt"

	"tse2e/internal/registry"
)

var registrations = []func(*registry.Registry) error{
	registerBasic,
}

// Register adds every suite case to r in definition order.
func Register(r *registry.Registry) error {
	for _, register := range registrations {
		if err := register(r); err != nil {
			return fmt.Errorf("register suite: %w", err)
		}
	}
	return nil
}

// NewRegistry returns a registry populated with the suite.
func NewRegistry() (*registry.Registry, error) {
	r := registry.New()
	if err := Register(r); err != nil {
		return nil, err
	}
	return r, nil
}
