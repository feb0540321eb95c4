package experience

// Source names the text field a requirement was read from.
type Source string

const (
	SourceTitle        Source = "title"
	SourceRequirements Source = "requirements"
	SourceDescription  Source = "description"
)

// Finding is a requirement extracted from one source.
type Finding struct {
	Source      Source      `json:"source"`
	Requirement Requirement `json:"requirement"`
}

// Resolution is the outcome of checking every finding. Required is the display text of the
// first finding, whichever source caused a failure.
type Resolution struct {
	Passed   bool
	Required string
	Failed   *Finding
}

// Scan extracts a requirement from each source in priority order: title, the structured
// requirements list, then the description. Sources with no requirement are skipped.
func Scan(title, requirements, description string) []Finding {
	sources := []struct {
		name Source
		text string
	}{
		{SourceTitle, title},
		{SourceRequirements, requirements},
		{SourceDescription, description},
	}

	findings := make([]Finding, 0, len(sources))
	for _, src := range sources {
		if req, ok := Extract(src.text); ok {
			findings = append(findings, Finding{Source: src.name, Requirement: req})
		}
	}
	return findings
}

// Resolve checks current years of experience against every finding in order and stops at
// the first one that is not satisfied. No findings means no stated requirement.
func Resolve(current int, findings []Finding) Resolution {
	if len(findings) == 0 {
		return Resolution{Passed: true}
	}

	res := Resolution{Passed: true, Required: findings[0].Requirement.Text}
	for i := range findings {
		if !findings[i].Requirement.Satisfied(current) {
			failed := findings[i]
			res.Passed = false
			res.Failed = &failed
			break
		}
	}
	return res
}
