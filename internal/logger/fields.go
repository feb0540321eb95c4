package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldRunID       = "run_id"
	FieldJobID       = "job_id"
	FieldCompany     = "company"
	FieldPosition    = "position"
	FieldOutcome     = "outcome"
	FieldReason      = "reason"
	FieldDetail      = "detail"
	FieldMatchedTerm = "matched_term"
	FieldExpRequired = "exp_required"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// JobFields identify a job in log entries. Empty values are dropped.
func JobFields(id, company, position string) []zap.Field {
	return StringFields(
		StringField{Key: FieldJobID, Value: id},
		StringField{Key: FieldCompany, Value: company},
		StringField{Key: FieldPosition, Value: position},
	)
}

// DecisionFields describe an engine decision.
func DecisionFields(outcome, reason, detail, matchedTerm, expRequired string) []zap.Field {
	return StringFields(
		StringField{Key: FieldOutcome, Value: outcome},
		StringField{Key: FieldReason, Value: reason},
		StringField{Key: FieldDetail, Value: detail},
		StringField{Key: FieldMatchedTerm, Value: matchedTerm},
		StringField{Key: FieldExpRequired, Value: expRequired},
	)
}

// WithJob attaches the job identity to the logger.
func WithJob(logger *zap.Logger, id, company, position string) *zap.Logger {
	return WithFields(logger, JobFields(id, company, position)...)
}
