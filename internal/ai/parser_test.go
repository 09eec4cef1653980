package ai

import (
	"strings"
	"testing"

	"github.com/azim128/jobify/internal/shared/apperr"
)

const validPayload = `{
  "description": "Build and operate backend services.",
  "responsibilities": ["Ship features", "Review code"],
  "requirements": ["3+ years Go"],
  "preferredSkills": ["Postgres"],
  "benefits": ["Remote work"]
}`

func TestParseDescriptionValid(t *testing.T) {
	desc, err := ParseDescription(validPayload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if desc.Description != "Build and operate backend services." {
		t.Errorf("description = %q", desc.Description)
	}
	if len(desc.Responsibilities) != 2 || desc.Responsibilities[0] != "Ship features" {
		t.Errorf("responsibilities = %v", desc.Responsibilities)
	}
	if len(desc.Benefits) != 1 {
		t.Errorf("benefits = %v", desc.Benefits)
	}
}

func TestParseDescriptionStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validPayload + "\n```"
	desc, err := ParseDescription(fenced)
	if err != nil {
		t.Fatalf("parse fenced: %v", err)
	}
	if desc.Description == "" {
		t.Error("expected description from fenced payload")
	}
}

func TestParseDescriptionMissingFields(t *testing.T) {
	_, err := ParseDescription(`{"description": "x", "requirements": [], "benefits": null, "preferredSkills": []}`)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "Missing fields") || !strings.Contains(msg, "responsibilities") || !strings.Contains(msg, "benefits") {
		t.Errorf("message = %q", msg)
	}
}

func TestParseDescriptionWrongTypes(t *testing.T) {
	_, err := ParseDescription(`{
	  "description": "x",
	  "responsibilities": "not an array",
	  "requirements": [],
	  "preferredSkills": 7,
	  "benefits": []
	}`)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "Expected arrays for") || !strings.Contains(msg, "responsibilities") || !strings.Contains(msg, "preferredSkills") {
		t.Errorf("message = %q", msg)
	}
}

func TestParseDescriptionMalformed(t *testing.T) {
	_, err := ParseDescription("not json at all")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Error parsing AI response") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestBuildPromptDefaults(t *testing.T) {
	prompt := BuildPrompt(GenerateInput{
		Title:           "Backend Engineer",
		Industry:        "Fintech",
		ExperienceLevel: "Senior",
		Skills:          []string{"Go", "Postgres"},
	})
	for _, want := range []string{"Senior Backend Engineer", "Fintech", "Location: Remote", "Employment Type: Full-time", "Go, Postgres"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptExplicitLocation(t *testing.T) {
	prompt := BuildPrompt(GenerateInput{
		Title:           "Recruiter",
		Industry:        "HR",
		ExperienceLevel: "Junior",
		Location:        "Dhaka",
		EmploymentType:  "Contract",
	})
	if !strings.Contains(prompt, "Location: Dhaka") || !strings.Contains(prompt, "Employment Type: Contract") {
		t.Errorf("prompt = %q", prompt)
	}
}
