package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/spigell/job-responder/internal/decision"
	"github.com/spigell/job-responder/internal/jobs"
	"github.com/spigell/job-responder/internal/skills"
)

func TestCheckJob(t *testing.T) {
	cfg := decision.Config{
		Skills:            skills.Lists{Disqualifying: []string{"kubernetes"}},
		RejectTerms:       decision.DefaultRejectTerms,
		CurrentExperience: 5,
	}
	job := jobs.Snapshot{
		Position:     "DevOps Engineer",
		Location:     "Remote",
		Compensation: "$150k",
		Skills:       "devops kubernetes",
		Description:  "Requires 1 year minimum",
	}

	var out bytes.Buffer
	if err := checkJob(&out, cfg, job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got decision.Decision
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, out.String())
	}
	if got.Outcome != decision.Reject || got.Reason != decision.ReasonDisqualifyingSkill {
		t.Fatalf("unexpected decision: %+v", got)
	}
}

func TestCheckJobInvalidConfig(t *testing.T) {
	var out bytes.Buffer
	err := checkJob(&out, decision.Config{CurrentExperience: -2}, jobs.Snapshot{})
	if !errors.Is(err, decision.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing must be printed on error, got %q", out.String())
	}
}

func TestSnapshotFromFlags(t *testing.T) {
	err := checkCmd.Flags().Parse([]string{
		"--title", "Go Developer",
		"--location", "In Office, SF",
		"--compensation", "$120k",
		"--apply-disabled",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	job := snapshotFromFlags(checkCmd)
	if job.Position != "Go Developer" || job.Location != "In Office, SF" || job.Compensation != "$120k" {
		t.Fatalf("unexpected snapshot: %+v", job)
	}
	if !job.ApplyDisabled {
		t.Fatalf("expected apply to be disabled")
	}
}
