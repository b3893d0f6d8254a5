package statement

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ajustes-contables/rt6/internal/logging"
)

// Loader assembles the Inputs for one recompute.
type Loader func(ctx context.Context) (Inputs, error)

// Service coalesces concurrent recomputes that share a key, such as an
// organization and closing period. Different keys never share results.
type Service struct {
	logger *slog.Logger
	group  singleflight.Group
}

// NewService creates a Service.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Recompute loads inputs and computes the statement for key. Callers
// arriving while a recompute for the same key is running share its result;
// shared reports whether that happened. A logger carried by ctx (see
// logging.NewContext) replaces the Service's own for that run.
func (s *Service) Recompute(ctx context.Context, key string, load Loader) (st *Statement, shared bool, err error) {
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.run(ctx, key, load)
	})
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Shared, res.Err
		}
		return res.Val.(*Statement), res.Shared, nil
	}
}

func (s *Service) run(ctx context.Context, key string, load Loader) (*Statement, error) {
	start := time.Now()
	log := logging.FromContext(ctx, s.logger).With("key", key)
	log.Debug("recompute started")

	in, err := load(ctx)
	if err != nil {
		log.Error("loading inputs failed", "error", err)
		return nil, err
	}

	st, err := Compute(in)
	if err != nil {
		log.Error("recompute failed", "error", err)
		return nil, err
	}

	for _, w := range st.Warnings {
		log.Warn("journal warning", "kind", string(w.Kind), "entry", w.EntryID, "account", w.AccountID, "detail", w.Description)
	}
	for _, he := range st.HierarchyErrors {
		log.Warn("hierarchy cycle", "account", he.AccountID, "error", he.Error())
	}
	for _, p := range st.Summary.MissingPeriods {
		log.Warn("missing price index", "period", p.String())
	}
	log.Info("recompute finished",
		"closing", st.Closing.String(),
		"accounts", len(st.Balances),
		"partidas", len(st.Computed),
		"net_recpam", st.Summary.NetRecpam.StringFixed(2),
		"elapsed", time.Since(start))
	return st, nil
}
