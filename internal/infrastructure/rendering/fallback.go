package rendering

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// strategy names one renderer in the fallback chain
type strategy struct {
	name     string
	renderer PDFRenderer
}

// FallbackRenderer tries a fixed chain of launch strategies in order
// and returns the first successful result. The order is: managed
// bundled Chromium, then a full local browser install, then a minimal
// bare-flag launch. When every strategy fails the caller gets
// RENDER_STRATEGY_EXHAUSTED wrapping the last underlying error.
type FallbackRenderer struct {
	strategies []strategy
	logger     *zap.Logger
}

// NewFallbackRenderer chains the given renderers in order. Renderers
// are tried exactly as passed; construction does not reorder them.
func NewFallbackRenderer(logger *zap.Logger, renderers ...PDFRenderer) (*FallbackRenderer, error) {
	if len(renderers) == 0 {
		return nil, fmt.Errorf("at least one render strategy is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	strategies := make([]strategy, 0, len(renderers))
	for i, r := range renderers {
		name := fmt.Sprintf("strategy-%d", i+1)
		if named, ok := r.(interface{ Name() string }); ok && named.Name() != "" {
			name = named.Name()
		}
		strategies = append(strategies, strategy{name: name, renderer: r})
	}

	return &FallbackRenderer{
		strategies: strategies,
		logger:     logger,
	}, nil
}

// Render tries each strategy until one produces a PDF. A cancelled or
// expired caller context stops the chain immediately; remaining
// strategies are not attempted.
func (f *FallbackRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	var lastErr error

	for _, s := range f.strategies {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return nil, NewRenderError(ErrCodeRenderTimeout,
					"rendering abandoned before all strategies were tried", multierr.Append(lastErr, err))
			}
			return nil, NewRenderError(ErrCodeRenderTimeout, "rendering was cancelled", err)
		}

		result, err := s.renderer.Render(ctx, req)
		if err == nil {
			return result, nil
		}

		f.logger.Warn("render strategy failed, falling back",
			zap.String("strategy", s.name),
			zap.Error(err))
		lastErr = err
	}

	return nil, NewRenderError(ErrCodeStrategyExhausted,
		fmt.Sprintf("all %d render strategies failed", len(f.strategies)), lastErr)
}

// Close releases every strategy's resources
func (f *FallbackRenderer) Close() error {
	var err error
	for _, s := range f.strategies {
		err = multierr.Append(err, s.renderer.Close())
	}
	return err
}

// Ensure FallbackRenderer implements PDFRenderer
var _ PDFRenderer = (*FallbackRenderer)(nil)
