// Package experience pulls a required-experience range out of free text and checks it
// against the candidate's own experience.
package experience

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/spigell/job-responder/internal/textutil"
)

// NoExperienceText is the display text for entry-level postings.
const NoExperienceText = "No experience required"

// noExperienceUpper bounds the always-satisfied range produced by entry-level phrases.
const noExperienceUpper = 100

const (
	yearUnit  = `(?:year|years|yr|yrs)`
	connector = `(?:-|–|—|to)`
)

var (
	noExperienceRe = regexp.MustCompile(`no\s+experience|no\s+exp|experience\s+not\s+required|entry\s+level|fresh\s+graduate|fresher`)
	simpleRe       = regexp.MustCompile(`(\d+)\s*` + yearUnit + `(?:\s+of\s+exp)?`)
	rangeTailRe    = regexp.MustCompile(`\d+\s*` + connector + `\s*$`)
	rangeRe        = regexp.MustCompile(`(\d+)\s*` + connector + `\s*(\d+)\s*` + yearUnit + `(?:\s+of\s+exp)?`)
	fallbackRe     = regexp.MustCompile(`(?:\(\s*(\d+)\s*\)|(\d+))?\s*` + connector + `?\s*(\d+)?\+?\s*` + yearUnit + `(?:\s+of\s+exp)?`)
)

// Requirement is an experience requirement in years. Upper is meaningful only for ranges.
type Requirement struct {
	Lower       int    `json:"lower"`
	Upper       int    `json:"upper,omitempty"`
	MinimumOnly bool   `json:"minimum_only"`
	Text        string `json:"text"`
}

// Minimum builds an "N+ years" requirement.
func Minimum(lower int) Requirement {
	return Requirement{Lower: lower, MinimumOnly: true, Text: fmt.Sprintf("%d+ years", lower)}
}

// Range builds an "N-M years" requirement. Reversed bounds are swapped.
func Range(lower, upper int) Requirement {
	if lower > upper {
		lower, upper = upper, lower
	}
	return Requirement{Lower: lower, Upper: upper, Text: fmt.Sprintf("%d-%d years", lower, upper)}
}

// NoExperience is the requirement of an entry-level posting.
func NoExperience() Requirement {
	return Requirement{Lower: 0, Upper: noExperienceUpper, Text: NoExperienceText}
}

// Satisfied reports whether current years of experience meet the requirement.
// Ranges are inclusive on both ends.
func (r Requirement) Satisfied(current int) bool {
	if r.MinimumOnly {
		return current >= r.Lower
	}
	return current >= r.Lower && current <= r.Upper
}

// Extract finds the first experience requirement in text. The forms are tried in a fixed
// order and the first one that matches wins: entry-level phrases, "N years", "N-M years",
// then a permissive "(N) years" / "N+ years" fallback.
func Extract(text string) (Requirement, bool) {
	text = textutil.Normalize(text)
	if text == "" {
		return Requirement{}, false
	}

	if noExperienceRe.MatchString(text) {
		return NoExperience(), true
	}

	if req, ok := extractSimple(text); ok {
		return req, true
	}

	for _, m := range rangeRe.FindAllStringSubmatch(text, -1) {
		lower, ok := atoi(m[1])
		if !ok {
			continue
		}
		upper, ok := atoi(m[2])
		if !ok {
			continue
		}
		return Range(lower, upper), true
	}

	return extractFallback(text)
}

// extractSimple skips numbers that close a range so "3-5 years" is left to the range form.
func extractSimple(text string) (Requirement, bool) {
	for _, loc := range simpleRe.FindAllStringSubmatchIndex(text, -1) {
		if rangeTailRe.MatchString(text[:loc[0]]) {
			continue
		}
		if n, ok := atoi(text[loc[2]:loc[3]]); ok {
			return Minimum(n), true
		}
	}
	return Requirement{}, false
}

// extractFallback ignores matches that carry no usable number.
func extractFallback(text string) (Requirement, bool) {
	for _, m := range fallbackRe.FindAllStringSubmatch(text, -1) {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		first, hasFirst := atoi(raw)
		second, hasSecond := atoi(m[3])

		switch {
		case hasFirst && hasSecond:
			return Range(first, second), true
		case hasFirst:
			return Minimum(first), true
		case hasSecond:
			// "needs 5+ years": the only number is the minimum
			return Minimum(second), true
		}
	}
	return Requirement{}, false
}

// atoi reports false for an empty or overflowing number so the match is dropped.
func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
