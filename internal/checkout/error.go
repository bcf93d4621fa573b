package checkout

import (
	"fmt"
	"strings"
)

// PreconditionError signals that AssembleOrder was invoked on a cart that
// fails validation. That is a control-flow bug in the caller (it skipped
// ValidateCart), not user input, so it is a distinct type rather than the
// ordinary validation result.
type PreconditionError struct {
	Errors []string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("order assembled from invalid cart: %s", strings.Join(e.Errors, "; "))
}
