package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-responder/internal/decision"
	"github.com/spigell/job-responder/internal/jobs"
	"github.com/spigell/job-responder/internal/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Decide on a single job given on the command line and print the decision as json",
	Run: func(cmd *cobra.Command, _ []string) {
		check(cmd)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().String("title", "", "job title")
	checkCmd.Flags().String("company", "", "company name")
	checkCmd.Flags().String("location", "", "remote policy text")
	checkCmd.Flags().String("compensation", "", "compensation text")
	checkCmd.Flags().String("skills", "", "skill tags text")
	checkCmd.Flags().String("requirements", "", "structured requirements, one per line")
	checkCmd.Flags().String("description", "", "job description")
	checkCmd.Flags().Bool("apply-disabled", false, "the apply action is not available")
}

func check(cmd *cobra.Command) {
	logger, err := logger.New(logger.Options{App: app, JSON: viper.GetBool("json"), Debug: viper.GetBool("debug")})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	job := snapshotFromFlags(cmd)
	if err := checkJob(cmd.OutOrStdout(), config.EngineConfig(), job); err != nil {
		logger.Fatal("checking the job", zap.Error(err))
	}
}

func snapshotFromFlags(cmd *cobra.Command) jobs.Snapshot {
	flags := cmd.Flags()
	str := func(name string) string {
		value, _ := flags.GetString(name)
		return value
	}
	disabled, _ := flags.GetBool("apply-disabled")

	return jobs.Snapshot{
		Company:       str("company"),
		Position:      str("title"),
		Location:      str("location"),
		Compensation:  str("compensation"),
		Skills:        str("skills"),
		Requirements:  str("requirements"),
		Description:   str("description"),
		ApplyDisabled: disabled,
	}
}

func checkJob(w io.Writer, cfg decision.Config, job jobs.Snapshot) error {
	engine, err := decision.New(cfg)
	if err != nil {
		return fmt.Errorf("building the decision engine: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(engine.Decide(job))
}
