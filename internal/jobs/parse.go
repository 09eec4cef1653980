package jobs

import (
	"bytes"
	"encoding/json"

	"github.com/azim128/jobify/internal/shared/apperr"
)

// Clients send salaryRange, requirements and responsibilities either as
// native JSON values or as JSON-encoded strings (multipart form fields arrive
// stringly). These helpers accept both encodings and fail with a field-named
// validation error on anything else.

type rawSalaryRange struct {
	Min *int64 `json:"min"`
	Max *int64 `json:"max"`
}

// ParseSalaryRange decodes a salary range from either encoding. A nil or
// empty raw value returns (nil, nil); presence and bounds are checked by
// ValidateSalaryRange.
func ParseSalaryRange(raw json.RawMessage) (*SalaryRange, error) {
	raw, err := unquote(raw)
	if err != nil {
		return nil, apperr.Validation("Invalid salary range format")
	}
	if raw == nil {
		return nil, nil
	}
	var decoded rawSalaryRange
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, apperr.Validation("Invalid salary range format")
	}
	if decoded.Min == nil || decoded.Max == nil {
		return nil, apperr.Validation("Please provide valid salary range")
	}
	return &SalaryRange{Min: *decoded.Min, Max: *decoded.Max}, nil
}

// ValidateSalaryRange enforces presence and ordering.
func ValidateSalaryRange(r *SalaryRange) error {
	if r == nil {
		return apperr.Validation("Please provide valid salary range")
	}
	if r.Min > r.Max {
		return apperr.Validation("Minimum salary cannot be greater than maximum salary")
	}
	return nil
}

// ParseStringList decodes a string array from either encoding. A nil or
// empty raw value returns an empty list.
func ParseStringList(raw json.RawMessage, fieldName string) ([]string, error) {
	raw, err := unquote(raw)
	if err != nil {
		return nil, apperr.Validationf("Invalid format for %s", fieldName)
	}
	if raw == nil {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperr.Validationf("Invalid format for %s", fieldName)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// unquote unwraps a JSON string layer: `"{\"min\":1}"` becomes `{"min":1}`.
// Non-string values pass through untouched and empty input maps to nil.
func unquote(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '"' {
		return trimmed, nil
	}
	var inner string
	if err := json.Unmarshal(trimmed, &inner); err != nil {
		return nil, err
	}
	if inner == "" {
		return nil, nil
	}
	return json.RawMessage(inner), nil
}
