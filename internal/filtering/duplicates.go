package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/job-responder/internal/jobs"
)

type duplicatesFilter struct {
	logger   *zap.Logger
	disabled bool
	reason   string
}

// NewDuplicates creates a filter that drops repeated jobs, keeping the first occurrence.
func NewDuplicates(logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &duplicatesFilter{logger: logger}
}

func (f *duplicatesFilter) Name() string { return "duplicates" }

func (f *duplicatesFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *duplicatesFilter) IsEnabled() bool { return !f.disabled }

func (f *duplicatesFilter) Validate() error { return nil }

func (f *duplicatesFilter) Apply(_ context.Context, v *jobs.Jobs) (*jobs.Jobs, Step, error) {
	initial := v.Len()
	dropped := v.Dedup()
	if len(dropped) > 0 {
		f.logger.Debug("dropping duplicated jobs",
			zap.Strings("duplicated_jobs", dropped),
			zap.Int("jobs_left", v.Len()),
		)
	}

	return v, Step{Initial: initial, Dropped: len(dropped), Left: v.Len()}, nil
}

func (f *duplicatesFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
