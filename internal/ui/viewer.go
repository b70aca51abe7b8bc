package ui

import "tse2e/internal/domain"

// Viewer displays the failures of a run
type Viewer interface {
	View(output *domain.RunOutput) error
}
