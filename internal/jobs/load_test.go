package jobs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const yamlJobs = `
- id: 101
  company: Acme
  position: "  Senior   Go Engineer "
  location: Remote
  compensation: $120k – $150k
  skills:
    - Go
    - Kubernetes
  requirements:
    - 5+ years of exp
    - Remote
  description: |
    Build services.
    Requires 5 years.
  apply_disabled: "true"
- company: Globex
  position: Data Engineer
  description_html: "<p>We need <b>3-5 years</b></p><ul><li>SQL</li></ul>"
`

func TestParseYAMLList(t *testing.T) {
	jobs, err := Parse([]byte(yamlJobs))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs.Len() != 2 {
		t.Fatalf("expected 2 jobs, got %d", jobs.Len())
	}

	first := jobs.Items[0]
	if first.ID != "101" {
		t.Fatalf("expected numeric id decoded as string, got %q", first.ID)
	}
	if first.Position != "Senior Go Engineer" {
		t.Fatalf("expected cleaned position, got %q", first.Position)
	}
	if first.Skills != "Go\nKubernetes" {
		t.Fatalf("expected joined skills, got %q", first.Skills)
	}
	if first.Requirements != "5+ years of exp\nRemote" {
		t.Fatalf("expected joined requirements, got %q", first.Requirements)
	}
	if !first.ApplyDisabled {
		t.Fatalf("expected apply_disabled to be decoded")
	}
	if first.Description != "Build services.\nRequires 5 years." {
		t.Fatalf("unexpected description: %q", first.Description)
	}

	second := jobs.Items[1]
	if !strings.Contains(second.Description, "3-5 years") || !strings.Contains(second.Description, "SQL") {
		t.Fatalf("expected description rendered from html, got %q", second.Description)
	}
	if second.Key() != "Globex/Data Engineer" {
		t.Fatalf("unexpected key: %q", second.Key())
	}
}

func TestParseJSONDocument(t *testing.T) {
	doc := `{"jobs": [{"id": "a", "position": "Go Developer", "skills": "Go, gRPC"}]}`

	jobs, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs.Len() != 1 || jobs.Items[0].Skills != "Go, gRPC" {
		t.Fatalf("unexpected jobs: %+v", jobs.Items)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"scalar document": `just text`,
		"mapping without jobs": `other: []`,
		"list of scalars": `[1, 2]`,
		"broken yaml": "- id: [",
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse([]byte(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	jobs, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs.Len() != 0 {
		t.Fatalf("expected no jobs")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	if err := os.WriteFile(path, []byte(yamlJobs), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	jobs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs.Len() != 2 {
		t.Fatalf("expected 2 jobs, got %d", jobs.Len())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
