package fitting

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// Fitter is the surface shared by the linear and nonlinear fitters.
type Fitter interface {
	Fit(m modeling.Model, x, y *grid.Grid, opts ...FitOption) (*Result, error)
	Fit2D(m modeling.Model, x, y, z *grid.Grid, opts ...FitOption) (*Result, error)
}

// Dataset is one observation set in a batch. X holds one grid per model
// input, Weights is optional.
type Dataset struct {
	X       []*grid.Grid
	Y       *grid.Grid
	Weights *grid.Grid
}

// BatchItem pairs the fitted copy of the template with its outcome.
// Model is set even when the fit failed.
type BatchItem struct {
	Model  modeling.Model
	Result *Result
	Err    error
}

type batchConfig struct {
	concurrency int
	fitOpts     []FitOption
}

type BatchOption func(c *batchConfig)

func BatchConcurrency(concurrency int) BatchOption {
	return func(c *batchConfig) {
		c.concurrency = concurrency
	}
}

func BatchFitOptions(opts ...FitOption) BatchOption {
	return func(c *batchConfig) {
		c.fitOpts = opts
	}
}

// BatchFit fits one copy of template per dataset. The template itself is
// never mutated. A failed dataset lands in its BatchItem without stopping
// the others, the returned error reports cancellation only.
func BatchFit(ctx context.Context, ft Fitter, template modeling.Model, datasets []Dataset, opts ...BatchOption) ([]BatchItem, error) {
	if ft == nil {
		return nil, ErrFitterMustBeSet
	}

	if template == nil {
		return nil, modeling.ErrModelMustBeSet
	}

	cfg := &batchConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.concurrency == 0 {
		cfg.concurrency = 1
	}

	items := make([]BatchItem, len(datasets))

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(cfg.concurrency)

	for i, ds := range datasets {
		errGrp.Go(func() error {
			select {
			case <-dCtx.Done():
				return errors.Wrapf(dCtx.Err(), "dataset %d", i)
			default:
			}

			m := template.Copy()

			fitOpts := append([]FitOption(nil), cfg.fitOpts...)
			if ds.Weights != nil {
				fitOpts = append(fitOpts, WithWeights(ds.Weights))
			}

			var (
				res *Result
				err error
			)

			switch len(ds.X) {
			case 1:
				res, err = ft.Fit(m, ds.X[0], ds.Y, fitOpts...)
			case 2:
				res, err = ft.Fit2D(m, ds.X[0], ds.X[1], ds.Y, fitOpts...)
			default:
				err = errors.Wrapf(modeling.ErrInputCount, "dataset %d has %d input grids", i, len(ds.X))
			}

			items[i] = BatchItem{Model: m, Result: res, Err: err}

			return nil
		})
	}

	if err := errGrp.Wait(); err != nil {
		return items, err
	}

	return items, nil
}
