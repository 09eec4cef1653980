package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/azim128/jobify/internal/shared/apperr"
)

// Description is the validated five-field generation result.
type Description struct {
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	PreferredSkills  []string `json:"preferredSkills"`
	Benefits         []string `json:"benefits"`
}

var codeFence = regexp.MustCompile("```json\n?|\n?```")

// StripCodeFences removes markdown code fences some models wrap JSON in.
func StripCodeFences(text string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(text, ""))
}

var requiredFields = []string{"description", "responsibilities", "requirements", "preferredSkills", "benefits"}
var arrayFields = []string{"responsibilities", "requirements", "preferredSkills", "benefits"}

// ParseDescription parses and structurally validates the generated text.
// Violations name the offending fields and surface as validation errors.
func ParseDescription(text string) (Description, error) {
	cleaned := StripCodeFences(text)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return Description{}, apperr.Wrap(apperr.KindValidation, "Error parsing AI response", err)
	}

	var missing []string
	for _, name := range requiredFields {
		raw, ok := fields[name]
		if !ok || string(raw) == "null" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Description{}, apperr.Validation("Invalid AI response structure. Missing fields: " + strings.Join(missing, ", "))
	}

	var invalid []string
	for _, name := range arrayFields {
		trimmed := strings.TrimSpace(string(fields[name]))
		if !strings.HasPrefix(trimmed, "[") {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		return Description{}, apperr.Validation("Invalid data types in response. Expected arrays for: " + strings.Join(invalid, ", "))
	}

	var out Description
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return Description{}, apperr.Wrap(apperr.KindValidation, "Error parsing AI response", err)
	}
	return out, nil
}
