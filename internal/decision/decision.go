// Package decision turns a job snapshot into an apply or reject decision.
package decision

import (
	"fmt"
	"strings"

	"github.com/spigell/job-responder/internal/experience"
	"github.com/spigell/job-responder/internal/jobs"
	"github.com/spigell/job-responder/internal/skills"
	"github.com/spigell/job-responder/internal/textutil"
)

type Outcome string

const (
	Apply  Outcome = "apply"
	Reject Outcome = "reject"
)

// Reason is the machine-readable cause of a rejection.
type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonMissingPosition      Reason = "missing_position"
	ReasonMissingLocation      Reason = "missing_location"
	ReasonMissingCompensation  Reason = "missing_compensation"
	ReasonNotRemote            Reason = "not_remote"
	ReasonApplyDisabled        Reason = "apply_disabled"
	ReasonDisqualifyingSkill   Reason = "disqualifying_skill"
	ReasonUnfavorableSkill     Reason = "unfavorable_skill"
	ReasonNotEnoughExperience  Reason = "not_enough_experience"
	ReasonBadWordInDescription Reason = "bad_word"
)

const (
	positionNotFound     = "Position not found"
	remotePolicyNotFound = "Remote policy not found"
	compensationNotFound = "Compensation not found"
	applyDisabledNote    = "Either already applied or not accepting from location"
)

// Decision is the engine output for one job. Detail is the human-readable note stored by the
// caller. ExpRequired is the first extracted experience requirement and is set whenever the
// experience stage was reached.
type Decision struct {
	Outcome     Outcome `json:"outcome"`
	Reason      Reason  `json:"reason,omitempty"`
	Detail      string  `json:"detail,omitempty"`
	MatchedTerm string  `json:"matched_term,omitempty"`
	ExpRequired string  `json:"exp_required,omitempty"`
}

func (d Decision) Applied() bool { return d.Outcome == Apply }

// Engine holds the compiled configuration. Decide is pure, so one Engine can serve
// any number of goroutines.
type Engine struct {
	classifier  *skills.Classifier
	badWords    []string
	rejectTerms []string
	current     int
}

// New validates cfg and compiles it. Configuration errors surface here, never in Decide.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	classifier, err := skills.NewClassifier(cfg.Skills)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &Engine{
		classifier:  classifier,
		badWords:    cleanTerms(cfg.BadWords),
		rejectTerms: cleanTerms(cfg.RejectTerms),
		current:     cfg.CurrentExperience,
	}, nil
}

// SkillListSizes returns the number of compiled entries per skill list.
func (e *Engine) SkillListSizes() (favorable, unfavorable, disqualifying int) {
	return e.classifier.Size()
}

// Decide runs the checks in a fixed order and stops at the first rejection:
// required fields, remote policy, disabled apply action, skills, experience, description
// bad words. Missing optional text skips the check that needs it.
func (e *Engine) Decide(job jobs.Snapshot) Decision {
	position := strings.TrimSpace(job.Position)

	switch {
	case position == "":
		return reject(ReasonMissingPosition, positionNotFound, "")
	case strings.TrimSpace(job.Location) == "":
		return reject(ReasonMissingLocation, remotePolicyNotFound, "")
	case strings.TrimSpace(job.Compensation) == "":
		return reject(ReasonMissingCompensation, compensationNotFound, "")
	}

	if term, ok := textutil.ContainsAny(job.Location, e.rejectTerms); ok {
		return reject(ReasonNotRemote, fmt.Sprintf("%s is not remote", position), term)
	}

	if job.ApplyDisabled {
		return reject(ReasonApplyDisabled, applyDisabledNote, "")
	}

	if d, rejected := e.checkSkills(job.Skills); rejected {
		return d
	}

	findings := experience.Scan(position, job.Requirements, job.Description)
	resolution := experience.Resolve(e.current, findings)
	if !resolution.Passed {
		d := reject(ReasonNotEnoughExperience, fmt.Sprintf("Not enough experience (required: %s, found in %s)",
			resolution.Failed.Requirement.Text, resolution.Failed.Source), "")
		d.ExpRequired = resolution.Required
		return d
	}

	if word, ok := textutil.ContainsAny(job.Description, e.badWords); ok {
		d := reject(ReasonBadWordInDescription, fmt.Sprintf("Skipped job due to bad word %s found in description", word), word)
		d.ExpRequired = resolution.Required
		return d
	}

	return Decision{Outcome: Apply, ExpRequired: resolution.Required}
}

func (e *Engine) checkSkills(text string) (Decision, bool) {
	res := e.classifier.Classify(text)

	switch res.Verdict {
	case skills.Disqualifying:
		return reject(ReasonDisqualifyingSkill, fmt.Sprintf("Found strict bad skill %s. Skipping.", res.Term), res.Term), true
	case skills.Unfavorable:
		return reject(ReasonUnfavorableSkill, fmt.Sprintf("Found bad skill %s. Skipping.", res.Term), res.Term), true
	default:
		return Decision{}, false
	}
}

func reject(reason Reason, detail, term string) Decision {
	return Decision{
		Outcome:     Reject,
		Reason:      reason,
		Detail:      detail,
		MatchedTerm: term,
	}
}
