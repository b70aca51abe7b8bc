package annotations

import (
	"fmt"
	"strings"
)

// Extract applies the declaration-time annotations of ct and its submodules
// to ca: nothing is exported except methods declared with Export, and
// methods declaring Args get those shape and dtype annotations. Submodule
// methods are addressed by their attribute path from ct.
func Extract(ct *ClassType, ca *ClassAnnotator) error {
	ca.ExportNone(ct)
	return extractClass(ct, ct, nil, ca, make(map[*ClassType]bool))
}

func extractClass(root, c *ClassType, prefix []string, ca *ClassAnnotator, seen map[*ClassType]bool) error {
	if c == nil || seen[c] {
		return nil
	}
	seen[c] = true

	for _, m := range c.Methods {
		path := append(append([]string(nil), prefix...), m.Name)
		if m.Export {
			if err := ca.ExportPath(root, path); err != nil {
				return fmt.Errorf("export %s: %w", strings.Join(path, "."), err)
			}
		}
		if m.Args != nil {
			if err := ca.AnnotateShapesAndDtypes(root, path, m.Args); err != nil {
				return fmt.Errorf("annotate %s: %w", strings.Join(path, "."), err)
			}
		}
	}
	for _, attr := range c.Attributes {
		if attr.Submodule == nil {
			continue
		}
		sub := append(append([]string(nil), prefix...), attr.Name)
		if err := extractClass(root, attr.Submodule, sub, ca, seen); err != nil {
			return err
		}
	}
	return nil
}
