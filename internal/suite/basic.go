package suite

import (
	"tse2e/internal/framework"
	"tse2e/internal/registry"
)

func registerBasic(r *registry.Registry) error {
	cases := []struct {
		name       string
		factory    framework.ModuleFactory
		invocation framework.Invocation
	}{
		{"MmModule_basic", newMmModule, mmModuleBasic},
		{"MmModule_chained", newMmModule, mmModuleChained},
		{"TanhModule_basic", newTanhModule, tanhModuleBasic},
		{"MmTanhModule_basic", newMmTanhModule, mmTanhModuleBasic},
	}
	for _, c := range cases {
		if err := r.Register(c.name, c.factory, c.invocation); err != nil {
			return err
		}
	}
	return nil
}

func newMmModule() framework.Module     { return &MmModule{} }
func newTanhModule() framework.Module   { return &TanhModule{} }
func newMmTanhModule() framework.Module { return &MmTanhModule{} }

func mmModuleBasic(module framework.Handle, tu *framework.TestUtils) error {
	_, err := module.Forward(tu.Rand(4, 4), tu.Rand(4, 4))
	return err
}

func mmModuleChained(module framework.Handle, tu *framework.TestUtils) error {
	res, err := module.Forward(tu.Rand(4, 4), tu.Rand(4, 4))
	if err != nil {
		return err
	}
	_, err = module.Forward(res, res)
	return err
}

func tanhModuleBasic(module framework.Handle, tu *framework.TestUtils) error {
	_, err := module.Forward(tu.Rand(2, 3, 1))
	return err
}

func mmTanhModuleBasic(module framework.Handle, tu *framework.TestUtils) error {
	_, err := module.Forward(tu.Rand(4, 2), tu.Rand(2, 4))
	return err
}
