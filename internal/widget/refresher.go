package widget

import (
	"context"
	"errors"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/metrics"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
)

// Refresher rebuilds the summary and pushes it to every surface.
type Refresher struct {
	src      Sources
	surfaces []Surface
	now      utils.Clock
}

func NewRefresher(src Sources, now utils.Clock, surfaces ...Surface) *Refresher {
	if now == nil {
		now = utils.SystemClock
	}
	return &Refresher{src: src, surfaces: surfaces, now: now}
}

// Summary builds the current summary without pushing it.
func (r *Refresher) Summary() (Summary, error) {
	return Build(r.src, r.now())
}

// Surfaces returns the number of configured surfaces.
func (r *Refresher) Surfaces() int { return len(r.surfaces) }

// Refresh pushes to every surface. A failing surface does not stop the others.
func (r *Refresher) Refresh(ctx context.Context) (Summary, error) {
	s, err := r.Summary()
	if err != nil {
		return Summary{}, err
	}

	var errs []error
	for _, surface := range r.surfaces {
		if err := surface.Push(ctx, s); err != nil {
			metrics.WidgetRefreshes.WithLabelValues(surface.Name(), "error").Inc()
			logger.Warn("Widget refresh failed", "surface", surface.Name(), "error", err)
			errs = append(errs, err)
			continue
		}
		metrics.WidgetRefreshes.WithLabelValues(surface.Name(), "ok").Inc()
	}
	return s, errors.Join(errs...)
}
