package lifecycle

import (
	"context"

	"github.com/raphi011/wt-core/internal/doctor"
)

// Doctor runs the read-only diagnostics for the engine's repository.
func (e *Engine) Doctor(ctx context.Context) (doctor.Report, error) {
	return doctor.Run(ctx, e.root, doctor.Options{Remote: e.remote})
}
