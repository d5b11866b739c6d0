package server

import (
	"context"

	"github.com/iwvelando/boiler-optimizer/pkg/api"
)

// Optimizer computes an optimization response. Implementations return a
// *validation.InputError (possibly wrapped) for rejected inputs.
type Optimizer interface {
	Optimize(ctx context.Context, req api.OptimizationRequest) (*api.OptimizationResponse, error)
}
