package ai

import (
	"fmt"
	"strings"
)

// SystemPrompt pins the assistant to JSON-only output.
const SystemPrompt = "You are a professional HR assistant skilled in writing job descriptions. You must respond with ONLY valid JSON, no additional text or formatting."

// GenerateInput describes the position to generate a description for.
// Location defaults to Remote and EmploymentType to Full-time.
type GenerateInput struct {
	Title           string   `json:"title"`
	Industry        string   `json:"industry"`
	ExperienceLevel string   `json:"experienceLevel"`
	Skills          []string `json:"skills"`
	Location        string   `json:"location"`
	EmploymentType  string   `json:"employmentType"`
}

// BuildPrompt renders the user prompt with the expected JSON structure.
func BuildPrompt(in GenerateInput) string {
	location := in.Location
	if location == "" {
		location = "Remote"
	}
	employmentType := in.EmploymentType
	if employmentType == "" {
		employmentType = "Full-time"
	}

	return fmt.Sprintf(`Generate a detailed job description for a %s %s position in the %s industry.

Return ONLY a valid JSON object with the following structure, nothing else:
{
  "description": "main job description",
  "responsibilities": ["array of responsibilities"],
  "requirements": ["array of requirements"],
  "preferredSkills": ["array of preferred skills"],
  "benefits": ["array of benefits"]
}

Include these details in the appropriate sections:
- Location: %s
- Employment Type: %s
- Required Skills: %s`,
		in.ExperienceLevel, in.Title, in.Industry,
		location, employmentType, strings.Join(in.Skills, ", "))
}
