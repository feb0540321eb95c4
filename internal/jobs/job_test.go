package jobs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func keys(v *Jobs) []string {
	out := make([]string, 0, v.Len())
	for _, job := range v.Items {
		out = append(out, job.Key())
	}
	return out
}

func TestSnapshotKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		job    Snapshot
		expect string
	}{
		{name: "id", job: Snapshot{ID: " 42 ", URL: "https://example.com/42"}, expect: "42"},
		{name: "url fallback", job: Snapshot{URL: "https://example.com/42"}, expect: "https://example.com/42"},
		{name: "company and position", job: Snapshot{Company: "Acme", Position: "Go Developer"}, expect: "Acme/Go Developer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.job.Key(); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestApplicationMessage(t *testing.T) {
	job := &Snapshot{Company: "Acme", Position: " Backend Engineer "}

	if got := job.ApplicationMessage(""); got != "Hello! I'd like to apply for the Backend Engineer role at Acme." {
		t.Fatalf("unexpected default message: %q", got)
	}

	if got := job.ApplicationMessage("{company} / {position}"); got != "Acme / Backend Engineer" {
		t.Fatalf("unexpected templated message: %q", got)
	}
}

func TestExcludePreservesOrder(t *testing.T) {
	jobs := &Jobs{Items: []*Snapshot{
		{ID: "1", Company: "Acme"},
		{ID: "2", Company: "Globex"},
		{ID: "3", Company: "acme "},
		{ID: "4", Company: "Initech"},
	}}

	dropped := jobs.Exclude(JobCompanyField, []string{"ACME"})
	if diff := cmp.Diff([]string{"1", "3"}, dropped); diff != "" {
		t.Fatalf("unexpected dropped keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"2", "4"}, keys(jobs)); diff != "" {
		t.Fatalf("unexpected remaining keys (-want +got):\n%s", diff)
	}

	dropped = jobs.Exclude(JobIDField, []string{"4", "missing"})
	if diff := cmp.Diff([]string{"4"}, dropped); diff != "" {
		t.Fatalf("unexpected dropped keys (-want +got):\n%s", diff)
	}

	if dropped := jobs.Exclude(JobIDField, nil); dropped != nil {
		t.Fatalf("expected nothing dropped, got %v", dropped)
	}
}

func TestDedup(t *testing.T) {
	jobs := &Jobs{Items: []*Snapshot{
		{ID: "1"}, {ID: "2"}, {ID: "1"}, {URL: "u"}, {URL: "u"},
	}}

	dropped := jobs.Dedup()
	if diff := cmp.Diff([]string{"1", "u"}, dropped); diff != "" {
		t.Fatalf("unexpected dropped keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "2", "u"}, keys(jobs)); diff != "" {
		t.Fatalf("unexpected remaining keys (-want +got):\n%s", diff)
	}
}

func TestTruncate(t *testing.T) {
	jobs := &Jobs{Items: []*Snapshot{{ID: "1"}, {ID: "2"}, {ID: "3"}}}

	if rest := jobs.Truncate(0); rest != nil || jobs.Len() != 3 {
		t.Fatalf("zero limit must keep everything")
	}

	rest := jobs.Truncate(2)
	if len(rest) != 1 || rest[0].ID != "3" {
		t.Fatalf("unexpected rest: %+v", rest)
	}
	if diff := cmp.Diff([]string{"1", "2"}, keys(jobs)); diff != "" {
		t.Fatalf("unexpected remaining keys (-want +got):\n%s", diff)
	}
}

func TestReportByCompany(t *testing.T) {
	jobs := &Jobs{Items: []*Snapshot{
		{ID: "1", Company: "Acme", Position: "Go Developer", URL: "https://example.com/1", Location: "Remote"},
		{ID: "2", Position: "Data Engineer"},
	}}

	report := jobs.ReportByCompany()

	entries, ok := report["Acme"]
	if !ok || len(entries) != 1 {
		t.Fatalf("expected one Acme entry, got %v", report)
	}
	if entries[0]["position"] != "Go Developer" || entries[0]["location"] != "Remote" {
		t.Fatalf("unexpected entry: %v", entries[0])
	}

	if len(report["unknown company"]) != 1 {
		t.Fatalf("expected job without company under the fallback key")
	}
}
