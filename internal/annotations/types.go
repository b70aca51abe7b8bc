// Package annotations records which attributes and methods of a module class
// are exported and what shapes and dtypes their arguments are expected to
// have.
package annotations

import (
	"fmt"
	"strings"

	"tse2e/internal/tensor"
)

// Attribute is a named attribute of a class. Submodule is set when the
// attribute holds another module.
type Attribute struct {
	Name      string
	Submodule *ClassType
}

// Method is a method of a class. NumArgs counts self.
// Export and Args are declaration-time annotations consumed by Extract.
type Method struct {
	Name    string
	NumArgs int
	Export  bool
	Args    []*ArgAnnotation
}

// ClassType describes the attributes and methods of a module class.
type ClassType struct {
	QualifiedName string
	Attributes    []Attribute
	Methods       []Method
}

// Attribute looks up an attribute by name.
func (ct *ClassType) Attribute(name string) (*Attribute, bool) {
	for i := range ct.Attributes {
		if ct.Attributes[i].Name == name {
			return &ct.Attributes[i], true
		}
	}
	return nil, false
}

// Method looks up a method by name.
func (ct *ClassType) Method(name string) (*Method, bool) {
	for i := range ct.Methods {
		if ct.Methods[i].Name == name {
			return &ct.Methods[i], true
		}
	}
	return nil, false
}

// walk visits ct and every class reachable through submodule attributes,
// each class once.
func (ct *ClassType) walk(visit func(*ClassType)) {
	seen := make(map[*ClassType]bool)
	var rec func(*ClassType)
	rec = func(c *ClassType) {
		if c == nil || seen[c] {
			return
		}
		seen[c] = true
		visit(c)
		for _, attr := range c.Attributes {
			rec(attr.Submodule)
		}
	}
	rec(ct)
}

// ArgAnnotation constrains one method argument. A nil Shape or DType means
// the property is unconstrained. A dimension of -1 matches any size.
type ArgAnnotation struct {
	Shape []int
	DType *tensor.DType
}

// Arg creates an ArgAnnotation with both shape and dtype set.
func Arg(shape []int, dtype tensor.DType) *ArgAnnotation {
	s := make([]int, len(shape))
	copy(s, shape)
	return &ArgAnnotation{Shape: s, DType: &dtype}
}

// Check verifies that t satisfies the annotation.
func (a ArgAnnotation) Check(t *tensor.Tensor) error {
	if a.DType != nil && t.DType() != *a.DType {
		return fmt.Errorf("expected dtype %s, got %s", *a.DType, t.DType())
	}
	if a.Shape == nil {
		return nil
	}
	shape := t.Shape()
	if len(shape) != len(a.Shape) {
		return fmt.Errorf("expected rank %d (shape %s), got shape %s", len(a.Shape), formatShape(a.Shape), formatShape(shape))
	}
	for i, dim := range a.Shape {
		if dim != -1 && dim != shape[i] {
			return fmt.Errorf("expected shape %s, got %s", formatShape(a.Shape), formatShape(shape))
		}
	}
	return nil
}

func formatShape(shape []int) string {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = fmt.Sprint(d)
	}
	return "[" + strings.Join(dims, ", ") + "]"
}
