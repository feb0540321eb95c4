package filtering

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/job-responder/internal/decision"
	"github.com/spigell/job-responder/internal/jobs"
	"github.com/spigell/job-responder/internal/logger"
	"github.com/spigell/job-responder/internal/textutil"
)

const descriptionPreviewLen = 120

type EligibilityConfig struct {
	// Workers bounds parallel evaluation. Zero uses GOMAXPROCS.
	Workers int
	// ExcludeRejected appends rejected jobs to ExcludeFile so later runs skip them.
	ExcludeRejected bool
	ExcludeFile     string
}

type EligibilityDeps struct {
	Engine *decision.Engine
	Logger *zap.Logger
}

type eligibilityFilter struct {
	enabled bool
	reason  string
	config  *EligibilityConfig
	deps    *EligibilityDeps
	records []Record
}

// NewEligibility creates the step that runs the decision engine and drops rejected jobs.
func NewEligibility(cfg *EligibilityConfig, deps *EligibilityDeps) Filter {
	if cfg == nil {
		cfg = &EligibilityConfig{}
	}
	return &eligibilityFilter{
		enabled: true,
		config:  cfg,
		deps:    deps,
	}
}

func (f *eligibilityFilter) Name() string { return "eligibility" }

func (f *eligibilityFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *eligibilityFilter) IsEnabled() bool { return f.enabled }

func (f *eligibilityFilter) Validate() error {
	if f.deps == nil || f.deps.Engine == nil {
		return errors.New("decision engine is not initialized: filter is not usable")
	}
	if f.config.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", f.config.Workers)
	}
	if f.config.ExcludeRejected && strings.TrimSpace(f.config.ExcludeFile) == "" {
		return errors.New("exclude file is required to exclude rejected jobs")
	}
	if f.deps.Logger == nil {
		f.deps.Logger = zap.NewNop()
	}
	return nil
}

func (f *eligibilityFilter) Apply(ctx context.Context, v *jobs.Jobs) (*jobs.Jobs, Step, error) {
	initial := v.Len()

	decisions, err := f.evaluate(ctx, v.Items)
	if err != nil {
		return v, Step{}, err
	}

	f.records = make([]Record, 0, len(decisions))
	approved := make([]*jobs.Snapshot, 0, initial)
	rejected := &jobs.Jobs{}
	for i, job := range v.Items {
		d := decisions[i]
		f.records = append(f.records, Record{Job: job, Decision: d})

		log := logger.WithJob(f.deps.Logger, job.Key(), job.Company, job.Position)
		fields := logger.DecisionFields(string(d.Outcome), string(d.Reason), d.Detail, d.MatchedTerm, d.ExpRequired)
		if !d.Applied() {
			fields = append(fields, zap.String("description_preview", textutil.TruncateForLog(job.Description, descriptionPreviewLen)))
			log.Info("job rejected", fields...)
			rejected.Items = append(rejected.Items, job)
			continue
		}

		log.Debug("job approved", fields...)
		approved = append(approved, job)
	}

	v.Items = approved

	if f.config.ExcludeRejected && rejected.Len() > 0 {
		if err := f.appendToExcludeFile(rejected); err != nil {
			f.deps.Logger.Warn("failed to append rejected jobs to exclude file", zap.Error(err))
		}
	}

	left := v.Len()
	return v, Step{Initial: initial, Dropped: initial - left, Left: left}, nil
}

// evaluate decides every job on a bounded worker pool. Results keep the input order.
func (f *eligibilityFilter) evaluate(ctx context.Context, items []*jobs.Snapshot) ([]decision.Decision, error) {
	workers := f.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	decisions := make([]decision.Decision, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			decisions[i] = f.deps.Engine.Decide(*job)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluating jobs: %w", err)
	}
	return decisions, nil
}

func (f *eligibilityFilter) appendToExcludeFile(rejected *jobs.Jobs) error {
	reasons := make(map[string]string, len(f.records))
	for _, record := range f.records {
		reasons[record.Job.Key()] = record.Decision.Detail
	}

	excluded := &jobs.ExcludedJobs{}
	for _, job := range rejected.Items {
		one := &jobs.Jobs{Items: []*jobs.Snapshot{job}}
		excluded.Append(one.ToExcluded(reasons[job.Key()]))
	}

	if err := excluded.AppendToFile(f.config.ExcludeFile); err != nil {
		return err
	}

	f.deps.Logger.Info("rejected jobs appended to exclude file",
		zap.Int("count", rejected.Len()),
		zap.String("exclude_file", f.config.ExcludeFile),
	)
	return nil
}

// Records returns the decisions taken during the last Apply.
func (f *eligibilityFilter) Records() []Record {
	return f.records
}

func (f *eligibilityFilter) Status() Status {
	details := map[string]string{
		"workers":          strconv.Itoa(f.config.Workers),
		"exclude_rejected": strconv.FormatBool(f.config.ExcludeRejected),
	}
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason, Details: details}
}
