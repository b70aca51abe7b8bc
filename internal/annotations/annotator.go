package annotations

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"tse2e/internal/tensor"
)

// ErrInvalidPath is returned when an export or annotation path does not
// resolve to a member of the class hierarchy.
var ErrInvalidPath = errors.New("annotations: invalid path")

// AttributeAnnotation is the export state of one attribute.
type AttributeAnnotation struct {
	Name       string
	IsExported bool
}

// MethodAnnotation is the export state and argument annotations of one method.
// ArgAnnotations is nil when the method was never annotated.
type MethodAnnotation struct {
	Name           string
	IsExported     bool
	ArgAnnotations []ArgAnnotation
}

// ClassAnnotation holds the annotations of a single class.
type ClassAnnotation struct {
	classType  *ClassType
	attributes []*AttributeAnnotation
	methods    []*MethodAnnotation
}

// ClassType returns the annotated class.
func (c *ClassAnnotation) ClassType() *ClassType {
	return c.classType
}

// Attributes returns the attribute annotations in declaration order.
func (c *ClassAnnotation) Attributes() []*AttributeAnnotation {
	return c.attributes
}

// Methods returns the method annotations in declaration order.
func (c *ClassAnnotation) Methods() []*MethodAnnotation {
	return c.methods
}

func (c *ClassAnnotation) attribute(name string) *AttributeAnnotation {
	for _, a := range c.attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func (c *ClassAnnotation) method(name string) *MethodAnnotation {
	for _, m := range c.methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// ClassAnnotator records annotations for a hierarchy of classes.
// Members start out exported until ExportNone is applied.
type ClassAnnotator struct {
	classes map[*ClassType]*ClassAnnotation
}

// NewClassAnnotator creates an empty ClassAnnotator.
func NewClassAnnotator() *ClassAnnotator {
	return &ClassAnnotator{classes: make(map[*ClassType]*ClassAnnotation)}
}

func (ca *ClassAnnotator) annotationFor(ct *ClassType) *ClassAnnotation {
	if c, ok := ca.classes[ct]; ok {
		return c
	}
	c := &ClassAnnotation{classType: ct}
	for _, attr := range ct.Attributes {
		c.attributes = append(c.attributes, &AttributeAnnotation{Name: attr.Name, IsExported: true})
	}
	for _, m := range ct.Methods {
		c.methods = append(c.methods, &MethodAnnotation{Name: m.Name, IsExported: true})
	}
	ca.classes[ct] = c
	return c
}

// ExportNone marks every attribute and method of ct, and of every class
// reachable through its submodules, as not exported.
func (ca *ClassAnnotator) ExportNone(ct *ClassType) {
	ct.walk(func(c *ClassType) {
		annotation := ca.annotationFor(c)
		for _, a := range annotation.attributes {
			a.IsExported = false
		}
		for _, m := range annotation.methods {
			m.IsExported = false
		}
	})
}

// ExportPath marks the attribute or method named by path as exported.
// All but the last path component must name submodule attributes.
func (ca *ClassAnnotator) ExportPath(ct *ClassType, path []string) error {
	owner, name, err := resolve(ct, path)
	if err != nil {
		return err
	}
	if _, ok := owner.Attribute(name); ok {
		ca.annotationFor(owner).attribute(name).IsExported = true
		return nil
	}
	if _, ok := owner.Method(name); ok {
		ca.annotationFor(owner).method(name).IsExported = true
		return nil
	}
	return fmt.Errorf("%w: class '%s' has no attribute or method '%s'", ErrInvalidPath, owner.QualifiedName, name)
}

// AnnotateShapesAndDtypes records argument annotations for the method named
// by methodPath. args holds one entry per argument including self; nil
// entries are unconstrained and the self entry must be nil.
func (ca *ClassAnnotator) AnnotateShapesAndDtypes(ct *ClassType, methodPath []string, args []*ArgAnnotation) error {
	owner, name, err := resolve(ct, methodPath)
	if err != nil {
		return err
	}
	method, ok := owner.Method(name)
	if !ok {
		return fmt.Errorf("%w: class '%s' has no method '%s'", ErrInvalidPath, owner.QualifiedName, name)
	}
	if len(args) != method.NumArgs {
		return fmt.Errorf("arg annotations for '%s.%s' must have %d entries (including self), got %d",
			owner.QualifiedName, name, method.NumArgs, len(args))
	}
	if len(args) > 0 && args[0] != nil {
		return fmt.Errorf("arg annotation for self of '%s.%s' must be nil", owner.QualifiedName, name)
	}

	annotations := make([]ArgAnnotation, len(args))
	for i, arg := range args {
		if arg == nil {
			continue
		}
		annotations[i] = ArgAnnotation{DType: arg.DType}
		if arg.Shape != nil {
			annotations[i].Shape = append([]int{}, arg.Shape...)
		}
	}
	ca.annotationFor(owner).method(name).ArgAnnotations = annotations
	return nil
}

// ClassAnnotation returns the annotations recorded for ct, if any.
func (ca *ClassAnnotator) ClassAnnotation(ct *ClassType) (*ClassAnnotation, bool) {
	c, ok := ca.classes[ct]
	return c, ok
}

// MethodAnnotation returns the annotation of the named method of ct, if ct
// has been annotated.
func (ca *ClassAnnotator) MethodAnnotation(ct *ClassType, name string) (*MethodAnnotation, bool) {
	c, ok := ca.classes[ct]
	if !ok {
		return nil, false
	}
	m := c.method(name)
	return m, m != nil
}

// resolve walks submodule attributes along path and returns the class owning
// the final component together with its name.
func resolve(ct *ClassType, path []string) (*ClassType, string, error) {
	if len(path) == 0 {
		return nil, "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	current := ct
	for _, component := range path[:len(path)-1] {
		attr, ok := current.Attribute(component)
		if !ok {
			return nil, "", fmt.Errorf("%w: class '%s' has no attribute '%s'", ErrInvalidPath, current.QualifiedName, component)
		}
		if attr.Submodule == nil {
			return nil, "", fmt.Errorf("%w: attribute '%s' of class '%s' is not a submodule", ErrInvalidPath, component, current.QualifiedName)
		}
		current = attr.Submodule
	}
	return current, path[len(path)-1], nil
}

// String renders the annotator as nested blocks. Classes are ordered by
// qualified name, members by declaration order.
func (ca *ClassAnnotator) String() string {
	classes := make([]*ClassAnnotation, 0, len(ca.classes))
	for _, c := range ca.classes {
		classes = append(classes, c)
	}
	sort.SliceStable(classes, func(i, j int) bool {
		return classes[i].classType.QualifiedName < classes[j].classType.QualifiedName
	})

	var b strings.Builder
	b.WriteString("ClassAnnotator {\n")
	for _, c := range classes {
		writeClass(&b, c)
	}
	b.WriteString("}\n")
	return b.String()
}

func writeClass(b *strings.Builder, c *ClassAnnotation) {
	fmt.Fprintf(b, "  ClassAnnotation('%s') {\n", c.classType.QualifiedName)
	for _, a := range c.attributes {
		fmt.Fprintf(b, "    AttributeAnnotation('%s') {\n", a.Name)
		fmt.Fprintf(b, "      isExported = %t\n", a.IsExported)
		b.WriteString("    }\n")
	}
	for _, m := range c.methods {
		fmt.Fprintf(b, "    MethodAnnotation('%s') {\n", m.Name)
		fmt.Fprintf(b, "      isExported = %t\n", m.IsExported)
		if m.ArgAnnotations == nil {
			b.WriteString("      argAnnotations = <none>\n")
		} else {
			b.WriteString("      argAnnotations =\n")
			for i, arg := range m.ArgAnnotations {
				fmt.Fprintf(b, "        ArgAnnotation(%d) {\n", i)
				if arg.DType == nil {
					b.WriteString("          dtype = <none>\n")
				} else {
					fmt.Fprintf(b, "          dtype = %s\n", tensor.ScalarTypeName(*arg.DType))
				}
				if arg.Shape == nil {
					b.WriteString("          shape = <none>\n")
				} else {
					fmt.Fprintf(b, "          shape = %s\n", formatShape(arg.Shape))
				}
				b.WriteString("        }\n")
			}
		}
		b.WriteString("    }\n")
	}
	b.WriteString("  }\n")
}
