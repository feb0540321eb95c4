package jobs

import (
	"strings"
	"time"
)

const (
	JobIDField      = "ID"
	JobCompanyField = "Company"

	defaultApplicationMessage = "Hello! I'd like to apply for the {position} role at {company}."
)

// Snapshot is what the scraping layer managed to read from one job card.
// An empty string means the field was not found.
type Snapshot struct {
	ID            string `json:"id,omitempty"`
	Company       string `json:"company,omitempty"`
	Position      string `json:"position,omitempty"`
	Location      string `json:"location,omitempty"`
	Compensation  string `json:"compensation,omitempty"`
	Skills        string `json:"skills,omitempty"`
	Requirements  string `json:"requirements,omitempty"`
	Description   string `json:"description,omitempty"`
	URL           string `json:"url,omitempty"`
	Type          string `json:"type,omitempty"`
	ApplyDisabled bool   `json:"apply_disabled,omitempty"`
}

type Jobs struct {
	Items []*Snapshot
}

type ExcludedJobs struct {
	Items []*ExcludedJob
}

type ExcludedJob struct {
	ID         string
	URL        string
	Company    string
	Position   string
	Reason     string
	ExcludedAt time.Time
}

// Key returns the job id, falling back to the URL and then to "company/position".
func (j *Snapshot) Key() string {
	if id := strings.TrimSpace(j.ID); id != "" {
		return id
	}
	if url := strings.TrimSpace(j.URL); url != "" {
		return url
	}
	return strings.TrimSpace(j.Company) + "/" + strings.TrimSpace(j.Position)
}

// ApplicationMessage fills {position} and {company} in the template.
// An empty template falls back to the built-in greeting.
func (j *Snapshot) ApplicationMessage(template string) string {
	if strings.TrimSpace(template) == "" {
		template = defaultApplicationMessage
	}
	return strings.NewReplacer(
		"{position}", strings.TrimSpace(j.Position),
		"{company}", strings.TrimSpace(j.Company),
	).Replace(template)
}

func (j *Snapshot) GetStringField(name string) string {
	switch name {
	case JobIDField:
		return j.Key()
	case JobCompanyField:
		return j.Company

	default:
		return ""
	}
}

// ToExcluded converts the jobs into exclude file entries carrying the given reason.
func (v *Jobs) ToExcluded(reason string) *ExcludedJobs {
	excluded := &ExcludedJobs{}
	for _, job := range v.Items {
		excluded.Items = append(excluded.Items, &ExcludedJob{
			ID:         job.Key(),
			URL:        job.URL,
			Company:    job.Company,
			Position:   job.Position,
			Reason:     reason,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}

func (v *ExcludedJobs) Append(s *ExcludedJobs) {
	v.Items = append(v.Items, s.Items...)
}

func (v *ExcludedJobs) IDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, job := range v.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

// ReportByCompany groups the jobs under "company" keys.
func (v *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range v.Items {
		key := job.Company
		if strings.TrimSpace(key) == "" {
			key = "unknown company"
		}
		report[key] = append(report[key], map[string]string{
			"position":     job.Position,
			"url":          job.URL,
			"location":     job.Location,
			"compensation": job.Compensation,
			"type":         job.Type,
		})
	}
	return report
}

func (v *Jobs) Len() int {
	return len(v.Items)
}

// Exclude drops every job whose field matches one of targets and returns the dropped keys.
// Company matching ignores case. Order of the remaining jobs is preserved.
func (v *Jobs) Exclude(name string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		set[normalizeField(name, target)] = struct{}{}
	}

	var excluded []string
	kept := v.Items[:0]
	for _, job := range v.Items {
		if _, ok := set[normalizeField(name, job.GetStringField(name))]; ok {
			excluded = append(excluded, job.Key())
			continue
		}
		kept = append(kept, job)
	}
	v.Items = kept

	return excluded
}

// Dedup drops repeated jobs, keeping the first occurrence of every key.
func (v *Jobs) Dedup() []string {
	seen := make(map[string]struct{}, len(v.Items))

	var dropped []string
	kept := v.Items[:0]
	for _, job := range v.Items {
		key := job.Key()
		if _, ok := seen[key]; ok {
			dropped = append(dropped, key)
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, job)
	}
	v.Items = kept

	return dropped
}

// Truncate keeps the first n jobs and returns the rest. n <= 0 keeps everything.
func (v *Jobs) Truncate(n int) []*Snapshot {
	if n <= 0 || len(v.Items) <= n {
		return nil
	}
	rest := append([]*Snapshot(nil), v.Items[n:]...)
	v.Items = v.Items[:n]
	return rest
}

func normalizeField(name, value string) string {
	value = strings.TrimSpace(value)
	if name == JobCompanyField {
		return strings.ToLower(value)
	}
	return value
}
