package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-responder/internal/decision"
	"github.com/spigell/job-responder/internal/filtering"
	"github.com/spigell/job-responder/internal/jobs"
	"github.com/spigell/job-responder/internal/logger"
)

const (
	PromptYes             = "Yes"
	PromptNo              = "No"
	PromptReportByCompany = "Report by companies"
	PromptShowRejected    = "Show rejected"
	PromptDecisionsToFile = "Dump decisions to file"
	appliedExcludeReason  = "applied"
	defaultJobsFile       = "jobs.yaml"
	autoApproveFlag       = "auto-approve"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptYes, PromptNo, PromptReportByCompany, PromptShowRejected, PromptDecisionsToFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Decide on every job from the jobs file and confirm the applications",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP(autoApproveFlag, "y", false, "do not ask for confirmation if found suitable jobs")
	runCmd.Flags().StringP("jobs-file", "i", defaultJobsFile, "yaml or json file with scraped jobs")
	runCmd.Flags().StringP("exclude-file", "e", "", "special file with jobs to exclude. Default is unset.")
	runCmd.Flags().IntP("limit", "l", 0, "apply to at most this many jobs. 0 means unlimited")
	runCmd.Flags().Int("workers", 0, "parallel evaluation workers. 0 means one per CPU")
	runCmd.Flags().Bool("exclude-rejected", false, "append rejected jobs to the exclude file")

	viper.BindPFlag("jobs-file", runCmd.Flags().Lookup("jobs-file"))
	viper.BindPFlag("exclude-file", runCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("limit", runCmd.Flags().Lookup("limit"))
	viper.BindPFlag("workers", runCmd.Flags().Lookup("workers"))
	viper.BindPFlag("exclude-rejected", runCmd.Flags().Lookup("exclude-rejected"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(logger.Options{App: app, JSON: viper.GetBool("json"), Debug: viper.GetBool("debug")})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the job-responder", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	engine, err := decision.New(config.EngineConfig())
	if err != nil {
		logger.Fatal("building the decision engine", zap.Error(err))
	}

	favorable, unfavorable, disqualifying := engine.SkillListSizes()
	logger.Debug("decision engine ready",
		zap.Int("favorable_skills", favorable),
		zap.Int("unfavorable_skills", unfavorable),
		zap.Int("disqualifying_skills", disqualifying),
		zap.Int("bad_words", len(config.BadWords)),
		zap.Int("current_experience", config.Experience.Current),
	)

	found, err := jobs.LoadFile(config.JobsFile)
	if err != nil {
		logger.Fatal("loading jobs", zap.String("jobs_file", config.JobsFile), zap.Error(err))
	}

	logger.Info("jobs loaded", zap.Int("count", found.Len()))

	if found.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs found"))
		return
	}

	filters := prepareFilters(config, engine, logger)

	left, summary, err := filters.RunFilters(ctx, found)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	logSummary(logger, summary)

	if left.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs left after filters"))
		return
	}

	action := PromptYes
	for {
		var err error
		if cmd.Flag(autoApproveFlag).Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		logger.Info("current list of jobs", zap.Int("count", left.Len()))

		if err := handleAction(action, logger, config, left, summary); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, left *jobs.Jobs, summary *filtering.Summary) error {
	switch action {
	case PromptYes:
		if err := apply(logger, left, config); err != nil {
			return err
		}
		return errExit
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(left.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("jobs count", left.Len()))
		return nil
	case PromptShowRejected:
		showRejected(logger, summary)
		return nil
	case PromptDecisionsToFile:
		filename, err := summary.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump decisions to file: %w", err)
		}
		logger.Info("dumping decisions to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// apply emits the application message for every approved job and remembers the jobs in the
// exclude file so the next run skips them.
func apply(log *zap.Logger, left *jobs.Jobs, config *Config) error {
	for _, job := range left.Items {
		logger.WithJob(log, job.Key(), job.Company, job.Position).Info("applying to job",
			zap.String("url", job.URL),
			zap.String("message", job.ApplicationMessage(config.Apply.Message)),
		)
	}

	if config.ExcludeFile != "" {
		if err := left.ToExcluded(appliedExcludeReason).AppendToFile(config.ExcludeFile); err != nil {
			return fmt.Errorf("append applied jobs to exclude file: %w", err)
		}
		log.Info("appended to exclude file", zap.String("filename", config.ExcludeFile))
	}

	log.Info("successfully applied to jobs", zap.Int("count", left.Len()))
	return nil
}

func showRejected(log *zap.Logger, summary *filtering.Summary) {
	for _, record := range summary.Rejected {
		d := record.Decision
		logger.WithJob(log, record.Job.Key(), record.Job.Company, record.Job.Position).Info("rejected",
			logger.DecisionFields(string(d.Outcome), string(d.Reason), d.Detail, d.MatchedTerm, d.ExpRequired)...,
		)
	}
}

func logSummary(log *zap.Logger, summary *filtering.Summary) {
	reasons := make(map[string]int)
	for reason, count := range summary.ReasonCounts() {
		reasons[string(reason)] = count
	}

	log.Info("run summary",
		zap.String(logger.FieldRunID, summary.RunID),
		zap.Int("applied", len(summary.Applied)),
		zap.Int("rejected", len(summary.Rejected)),
		zap.Int("deferred", len(summary.Deferred)),
		zap.Any("reasons", reasons),
	)
}

func prepareFilters(config *Config, engine *decision.Engine, logger *zap.Logger) *filtering.Filtering {
	steps := []filtering.Filter{
		filtering.NewDuplicates(logger),
		filtering.NewExcludedCompanies(config.Apply.Exclude.Companies, logger),
		filtering.NewExcludeFile(config.ExcludeFile, logger),
		filtering.NewEligibility(&filtering.EligibilityConfig{
			Workers:         config.Workers,
			ExcludeRejected: config.ExcludeRejected,
			ExcludeFile:     config.ExcludeFile,
		}, &filtering.EligibilityDeps{
			Engine: engine,
			Logger: logger,
		}),
		filtering.NewLimit(config.Limit, logger),
	}

	return filtering.New(steps, logger)
}
