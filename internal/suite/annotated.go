package suite

import (
	"fmt"
	"sort"

	"tse2e/internal/annotations"
	"tse2e/internal/tensor"
)

// AnnotatorFixture builds a ClassAnnotator for inspection by the
// annotations command and golden checks.
type AnnotatorFixture func() (*annotations.ClassAnnotator, error)

var annotatorFixtures = map[string]AnnotatorFixture{
	"class-annotator-repr": classAnnotatorRepr,
	"shape-and-dtype":      shapeAndDtype,
}

// DefaultAnnotatorFixture is used when no fixture name is given.
const DefaultAnnotatorFixture = "class-annotator-repr"

// AnnotatorFixtureNames lists the available fixtures in sorted order.
func AnnotatorFixtureNames() []string {
	names := make([]string, 0, len(annotatorFixtures))
	for name := range annotatorFixtures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildAnnotator runs the named fixture.
func BuildAnnotator(name string) (*annotations.ClassAnnotator, error) {
	fixture, ok := annotatorFixtures[name]
	if !ok {
		return nil, fmt.Errorf("unknown annotator fixture %q (available: %v)", name, AnnotatorFixtureNames())
	}
	return fixture()
}

func moduleAttributes(extra ...annotations.Attribute) []annotations.Attribute {
	attrs := []annotations.Attribute{{Name: "training"}, {Name: "_is_full_backward_hook"}}
	return append(attrs, extra...)
}

// classAnnotatorRepr annotates a module holding a submodule: nothing is
// exported except one attribute and the forward method of the submodule.
func classAnnotatorRepr() (*annotations.ClassAnnotator, error) {
	submodule := &annotations.ClassType{
		QualifiedName: "__torch__.Submodule",
		Attributes:    moduleAttributes(annotations.Attribute{Name: "exported"}, annotations.Attribute{Name: "not_exported"}),
		Methods: []annotations.Method{
			{Name: "forward", NumArgs: 1},
			{Name: "not_exported_method", NumArgs: 1},
		},
	}
	root := &annotations.ClassType{
		QualifiedName: "__torch__.TestModule",
		Attributes:    moduleAttributes(annotations.Attribute{Name: "s", Submodule: submodule}),
		Methods:       []annotations.Method{{Name: "forward", NumArgs: 2}},
	}

	ca := annotations.NewClassAnnotator()
	ca.ExportNone(root)
	if err := ca.ExportPath(root, []string{"s", "exported"}); err != nil {
		return nil, err
	}
	if err := ca.ExportPath(root, []string{"s", "forward"}); err != nil {
		return nil, err
	}
	if err := ca.AnnotateShapesAndDtypes(root, []string{"forward"}, []*annotations.ArgAnnotation{
		nil,
		annotations.Arg([]int{1024, 2}, tensor.Float32),
	}); err != nil {
		return nil, err
	}
	return ca, nil
}

// shapeAndDtype annotates a single forward argument with a dynamic leading
// dimension and an int8 dtype.
func shapeAndDtype() (*annotations.ClassAnnotator, error) {
	root := &annotations.ClassType{
		QualifiedName: "__torch__.TestModule",
		Attributes:    moduleAttributes(),
		Methods:       []annotations.Method{{Name: "forward", NumArgs: 2}},
	}

	ca := annotations.NewClassAnnotator()
	if err := ca.AnnotateShapesAndDtypes(root, []string{"forward"}, []*annotations.ArgAnnotation{
		nil,
		annotations.Arg([]int{-1, 1024}, tensor.Int8),
	}); err != nil {
		return nil, err
	}
	return ca, nil
}
