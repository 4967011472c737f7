package viability

import (
	"context"

	"github.com/iwvelando/deal-viability/internal/deal"
	"github.com/iwvelando/deal-viability/pkg/constants"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EvaluateAll evaluates deals concurrently, at most limit at a time (a limit
// of zero or less uses DefaultBatchConcurrency). Results keep the order of
// the inputs. The only possible error is the context being done.
func (e *Engine) EvaluateAll(ctx context.Context, inputs []deal.ProjectInput, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = constants.DefaultBatchConcurrency
	}

	results := make([]Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.Evaluate(inputs[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.logger.Warn("batch evaluation interrupted",
			zap.String("op", "viability.EvaluateAll"),
			zap.Int("deals", len(inputs)),
			zap.Error(err),
		)
		return nil, err
	}

	e.logger.Debug("batch evaluation complete",
		zap.String("op", "viability.EvaluateAll"),
		zap.Int("deals", len(inputs)),
	)
	return results, nil
}
