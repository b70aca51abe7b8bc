package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tse2e/internal/suite"
)

// AnnotationsCommand prints the annotation repr of a fixture
type AnnotationsCommand struct {
	deps *Deps
}

// NewAnnotationsCommand creates a new AnnotationsCommand
func NewAnnotationsCommand(deps *Deps) *AnnotationsCommand {
	return &AnnotationsCommand{deps: deps}
}

// Execute runs the command
func (ac *AnnotationsCommand) Execute(cmd *cobra.Command, args []string) error {
	name := suite.DefaultAnnotatorFixture
	if len(args) > 0 {
		name = args[0]
	}
	ca, err := suite.BuildAnnotator(name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(ac.deps.Out, ca.String())
	return err
}
