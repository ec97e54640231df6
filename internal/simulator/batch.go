package simulator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"heatpump_simulator/internal/model"
)

// Job is one independent simulation request.
type Job struct {
	Location int
	Building model.BuildingProfile
	Weather  model.WeatherSeries
}

// SimulateBatch runs jobs in parallel, at most limit at a time (unbounded when
// limit <= 0). Results are returned in job order; the first failure cancels
// the remaining jobs.
func (s *Simulator) SimulateBatch(ctx context.Context, jobs []Job, limit int) ([]model.DemandSeries, error) {
	results := make([]model.DemandSeries, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := s.Simulate(job.Location, job.Building, job.Weather)
			if err != nil {
				return fmt.Errorf("job %d (location %d): %w", i, job.Location, err)
			}
			results[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
