// Package skills screens the skill tags of a job posting against three configured lists.
package skills

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spigell/job-responder/internal/textutil"
)

// Verdict is the classification of a skills blob.
type Verdict string

const (
	Neutral       Verdict = "neutral"
	Favorable     Verdict = "favorable"
	Unfavorable   Verdict = "unfavorable"
	Disqualifying Verdict = "disqualifying"
)

// minPartialLen is the shortest single-word entry allowed to match inside a longer token.
const minPartialLen = 3

// ErrEmptyEntry is returned when a configured list holds a blank entry.
var ErrEmptyEntry = errors.New("skill entry must not be empty")

// Lists holds the configured skill lists. Entries are case-insensitive words or phrases.
type Lists struct {
	Favorable     []string `mapstructure:"favorable" json:"favorable" validate:"dive,required"`
	Unfavorable   []string `mapstructure:"unfavorable" json:"unfavorable" validate:"dive,required"`
	Disqualifying []string `mapstructure:"disqualifying" json:"disqualifying" validate:"dive,required"`
}

// Result describes what the classifier found. Term is the configured entry behind Verdict.
// The per-list fields keep every hit for diagnostics; Unfavorable stays empty when a
// favorable entry matched because that list is never consulted then.
type Result struct {
	Verdict       Verdict
	Term          string
	Favorable     string
	Unfavorable   string
	Disqualifying string
}

type entry struct {
	term  string
	norm  string
	multi bool
	runes int
}

type list []entry

// Classifier matches skills text against compiled lists. It is immutable and safe for concurrent use.
type Classifier struct {
	favorable     list
	unfavorable   list
	disqualifying list
}

// NewClassifier compiles the lists. A blank entry is a configuration error.
func NewClassifier(lists Lists) (*Classifier, error) {
	favorable, err := compile("favorable", lists.Favorable)
	if err != nil {
		return nil, err
	}

	unfavorable, err := compile("unfavorable", lists.Unfavorable)
	if err != nil {
		return nil, err
	}

	disqualifying, err := compile("disqualifying", lists.Disqualifying)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		favorable:     favorable,
		unfavorable:   unfavorable,
		disqualifying: disqualifying,
	}, nil
}

// Classify evaluates favorable first, unfavorable only when nothing favorable matched, and
// disqualifying always. A disqualifying hit wins over both other lists.
func (c *Classifier) Classify(skillsText string) Result {
	text := textutil.Normalize(skillsText)
	if text == "" {
		return Result{Verdict: Neutral}
	}
	words := strings.Fields(text)

	var res Result
	res.Favorable, _ = c.favorable.match(text, words)
	if res.Favorable == "" {
		res.Unfavorable, _ = c.unfavorable.match(text, words)
	}
	res.Disqualifying, _ = c.disqualifying.match(text, words)

	switch {
	case res.Disqualifying != "":
		res.Verdict, res.Term = Disqualifying, res.Disqualifying
	case res.Favorable != "":
		res.Verdict, res.Term = Favorable, res.Favorable
	case res.Unfavorable != "":
		res.Verdict, res.Term = Unfavorable, res.Unfavorable
	default:
		res.Verdict = Neutral
	}

	return res
}

// Size returns the number of compiled entries per list.
func (c *Classifier) Size() (favorable, unfavorable, disqualifying int) {
	return len(c.favorable), len(c.unfavorable), len(c.disqualifying)
}

func compile(name string, terms []string) (list, error) {
	out := make(list, 0, len(terms))
	for i, term := range terms {
		n := textutil.Normalize(term)
		if n == "" {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, ErrEmptyEntry)
		}
		out = append(out, entry{
			term:  strings.TrimSpace(term),
			norm:  n,
			multi: strings.Contains(n, " "),
			runes: utf8.RuneCountInString(n),
		})
	}
	return out, nil
}

// match runs the phrase pass over the whole text, then the word pass token by token.
func (l list) match(text string, words []string) (string, bool) {
	for _, e := range l {
		if strings.Contains(text, e.norm) {
			return e.term, true
		}
	}

	for _, word := range words {
		for _, e := range l {
			if e.matchesWord(word) {
				return e.term, true
			}
		}
	}

	return "", false
}

func (e entry) matchesWord(word string) bool {
	switch {
	case word == e.norm:
		return true
	case e.multi:
		// one word of a multi-word skill tag
		return strings.Contains(e.norm, word)
	default:
		// stemmed or compound variants, "testing" inside "pentesting"
		return e.runes >= minPartialLen && strings.Contains(word, e.norm)
	}
}
