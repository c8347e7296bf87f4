package overview

import (
	"context"
	"time"

	"log/slog"

	"github.com/jekabolt/grbpwr-analytics/internal/form"
)

func (w *Worker) worker(ctx context.Context) {
	ticker := time.NewTicker(w.c.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refresh(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// refresh rebuilds the default overview. On failure the previous value is
// kept and expires with the TTL.
func (w *Worker) refresh(ctx context.Context) {
	o, err := w.b.GetOverview(ctx, form.DefaultQuery())
	if err != nil {
		if ctx.Err() == nil {
			slog.Default().ErrorContext(ctx, "can't refresh overview",
				slog.String("err", err.Error()),
			)
		}
		return
	}
	w.set(o)
	slog.Default().DebugContext(ctx, "overview refreshed",
		slog.Int("orders", o.OrderStatuses.TotalOrders),
		slog.Int("new_customers", o.Customers.NewCustomers),
	)
}
