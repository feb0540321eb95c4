package jobs

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/spigell/job-responder/internal/textutil"
)

const descriptionHTMLKey = "description_html"

var errBadDocument = errors.New("jobs document must be a list or a mapping with a 'jobs' list")

// LoadFile reads jobs from a YAML or JSON file.
func LoadFile(path string) (*Jobs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading jobs file: %w", err)
	}

	return Parse(data)
}

// Parse accepts either a top-level list of jobs or a mapping with a "jobs" key.
func Parse(data []byte) (*Jobs, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse jobs document: %w", err)
	}

	var items []any
	switch doc := raw.(type) {
	case nil:
		return &Jobs{}, nil
	case []any:
		items = doc
	case map[string]any:
		list, ok := doc["jobs"].([]any)
		if !ok {
			return nil, errBadDocument
		}
		items = list
	default:
		return nil, errBadDocument
	}

	return Decode(items)
}

// Decode converts loosely typed job maps (as a scraper would emit them) into snapshots.
// List values for text fields, such as skill tags, are joined line by line.
func Decode(items []any) (*Jobs, error) {
	jobs := &Jobs{Items: make([]*Snapshot, 0, len(items))}
	for idx, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("job #%d: expected a mapping, got %T", idx, item)
		}

		job, err := decodeSnapshot(fields)
		if err != nil {
			return nil, fmt.Errorf("job #%d: %w", idx, err)
		}
		jobs.Items = append(jobs.Items, job)
	}
	return jobs, nil
}

func decodeSnapshot(fields map[string]any) (*Snapshot, error) {
	var job Snapshot

	cfg := &mapstructure.DecoderConfig{
		Result:           &job,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       joinListHook,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(fields); err != nil {
		return nil, err
	}

	if html, ok := fields[descriptionHTMLKey].(string); ok && strings.TrimSpace(job.Description) == "" {
		text, err := textutil.HTMLToText(html)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", descriptionHTMLKey, err)
		}
		job.Description = text
	}

	job.Position = textutil.Clean(job.Position)
	job.Location = textutil.Clean(job.Location)
	job.Compensation = textutil.Clean(job.Compensation)
	job.Skills = textutil.Clean(job.Skills)
	job.Requirements = textutil.Clean(job.Requirements)
	job.Description = textutil.Clean(job.Description)

	return &job, nil
}

func joinListHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || from.Kind() != reflect.Slice {
		return data, nil
	}

	items := reflect.ValueOf(data)
	parts := make([]string, 0, items.Len())
	for i := 0; i < items.Len(); i++ {
		parts = append(parts, fmt.Sprint(items.Index(i).Interface()))
	}
	return strings.Join(parts, "\n"), nil
}
