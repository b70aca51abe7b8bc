package domain

import "tse2e/internal/framework"

// TestCase is a named end-to-end test: a factory producing a fresh module
// and an invocation driving it. Immutable once registered.
type TestCase struct {
	Name          string
	ModuleFactory framework.ModuleFactory
	Invocation    framework.Invocation
}
