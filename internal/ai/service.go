package ai

import (
	"context"
	"strings"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/telemetry"
)

// Result is a generated job description plus token accounting for the call.
type Result struct {
	JobDescription Description `json:"jobDescription"`
	Usage          Usage       `json:"usage"`
}

// Service orchestrates prompt construction, model invocation, and
// response parsing.
type Service struct {
	Client Client
}

func NewService(client Client) *Service {
	return &Service{Client: client}
}

// Generate produces a structured job description from the input profile.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*Result, error) {
	if s.Client == nil {
		return nil, apperr.Configuration("AI service is not configured")
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Industry) == "" || strings.TrimSpace(in.ExperienceLevel) == "" {
		return nil, apperr.Validation("Please provide job title, industry, and experience level")
	}

	prompt := BuildPrompt(in)
	content, usage, err := s.Client.Generate(ctx, SystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	desc, err := ParseDescription(content)
	if err != nil {
		return nil, err
	}

	telemetry.Info("ai.generate", map[string]any{"title": in.Title, "totalTokens": usage.TotalTokens})
	return &Result{JobDescription: desc, Usage: usage}, nil
}
