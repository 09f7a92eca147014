package publish

import (
	"log/slog"

	"github.com/starford/inkpress/internal/apperr"
)

// Policy decides what a failed operation does to the run.
type Policy int

const (
	// Mandatory failures abort the run.
	Mandatory Policy = iota
	// BestEffort render failures are logged and the run continues.
	// Write failures still abort.
	BestEffort
)

func (p Policy) String() string {
	switch p {
	case Mandatory:
		return "mandatory"
	case BestEffort:
		return "best-effort"
	default:
		return "unknown"
	}
}

// apply returns err unless the policy allows the run to continue past it.
func (p Policy) apply(logger *slog.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	if p == BestEffort && apperr.Is(err, apperr.CategoryRender) {
		logger.Warn("skipping failed "+op,
			slog.String("policy", p.String()),
			slog.String("error", err.Error()))
		return nil
	}
	return err
}
