package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/job-responder/internal/jobs"
)

type limitFilter struct {
	limit    int
	logger   *zap.Logger
	deferred []*jobs.Snapshot
	disabled bool
	reason   string
}

// NewLimit creates a filter that keeps the first limit jobs. Zero means unlimited.
func NewLimit(limit int, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &limitFilter{
		limit:  limit,
		logger: logger,
	}
}

func (f *limitFilter) Name() string { return "limit" }

func (f *limitFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *limitFilter) IsEnabled() bool { return !f.disabled }

func (f *limitFilter) Validate() error {
	if f.limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", f.limit)
	}
	return nil
}

func (f *limitFilter) Apply(_ context.Context, v *jobs.Jobs) (*jobs.Jobs, Step, error) {
	initial := v.Len()
	f.deferred = v.Truncate(f.limit)
	if len(f.deferred) > 0 {
		f.logger.Info("limit reached, deferring the rest of jobs",
			zap.Int("limit", f.limit),
			zap.Int("deferred", len(f.deferred)),
		)
	}

	return v, Step{Initial: initial, Dropped: len(f.deferred), Left: v.Len()}, nil
}

// Deferred returns the jobs cut during the last Apply.
func (f *limitFilter) Deferred() []*jobs.Snapshot {
	return f.deferred
}

func (f *limitFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: map[string]string{"limit": strconv.Itoa(f.limit)}}
}
