package apperr

import (
	"context"
	"errors"
	"os/exec"
)

// FromCommand classifies the failure of an external program: a done ctx
// is KindUnavailable, a missing binary is KindModel, anything else is
// fallback.
func FromCommand(ctx context.Context, err error, fallback Kind) error {
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return E(KindUnavailable, err)
	case errors.Is(err, exec.ErrNotFound):
		return E(KindModel, err)
	default:
		return E(fallback, err)
	}
}
