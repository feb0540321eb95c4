package decision

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/job-responder/internal/skills"
	"github.com/spigell/job-responder/internal/textutil"
)

// DefaultRejectTerms mark a remote-policy text as not remote.
var DefaultRejectTerms = []string{"in office"}

// ErrInvalidConfig wraps every configuration problem reported by New.
var ErrInvalidConfig = errors.New("invalid engine configuration")

// Config is loaded once per run and never mutated afterwards.
type Config struct {
	Skills            skills.Lists
	BadWords          []string `validate:"dive,required"`
	RejectTerms       []string `validate:"dive,required"`
	CurrentExperience int      `validate:"gte=0"`
}

// Validate checks the configuration without building an engine.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := checkTerms("bad-words", c.BadWords); err != nil {
		return err
	}
	return checkTerms("reject-terms", c.RejectTerms)
}

func checkTerms(name string, terms []string) error {
	for i, term := range terms {
		if textutil.Normalize(term) == "" {
			return fmt.Errorf("%w: %s[%d] is blank", ErrInvalidConfig, name, i)
		}
	}
	return nil
}

func cleanTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		out = append(out, strings.TrimSpace(term))
	}
	return out
}
