package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/automate/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

var ErrLLMDisabled = errors.New("job analysis is not configured")

// Generator produces a completion for a single prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator adapts a langchaingo model to Generator.
type GeminiGenerator struct {
	Client llms.Model
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &GeminiGenerator{Client: llm}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.Client, prompt)
}

type LLMService struct {
	// Generator is nil when no API key is configured.
	Generator Generator
}

func NewLLMService(g Generator) *LLMService {
	return &LLMService{Generator: g}
}

const maxDescriptionLen = 20000

const jobAnalysisPrompt = `
You are a career assistant helping a candidate decide whether to apply to a job.

### INSTRUCTIONS:
1. **Compare** the job posting with the candidate profile.
2. **Be concrete**: name the skills and experience that line up and the ones that are missing.
3. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "fit_score": "Integer from 0 to 100",
    "summary": "Two or three sentences on the role and how well the candidate fits",
    "strengths": ["Array", "of", "matching", "points"],
    "gaps": ["Array", "of", "missing", "requirements"],
    "talking_points": ["Short", "lines", "for", "a", "cover", "letter"]
}

### CANDIDATE:
Name: %s %s
Location: %s
GitHub: %s
Bio: %s

### JOB:
Company: %s
Position: %s
Location: %s
Type: %s
Salary: %s

%s
`

// AnalyzeJob asks the model how well profile fits job and returns its raw
// JSON answer.
func (s *LLMService) AnalyzeJob(ctx context.Context, job models.Job, profile models.Profile) (string, error) {
	if s == nil || s.Generator == nil {
		return "", ErrLLMDisabled
	}

	description := job.Description
	if len(description) > maxDescriptionLen {
		description = description[:maxDescriptionLen]
	}

	location := strings.TrimSpace(strings.Join([]string{profile.City, profile.State, profile.Country}, " "))
	prompt := fmt.Sprintf(jobAnalysisPrompt,
		profile.FirstName, profile.LastName, location, profile.GithubUsername, profile.Bio,
		job.Company, job.PositionName, job.Location, strings.Join(job.JobType, ", "), job.Salary,
		description,
	)

	resp, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	resp = stripCodeFence(resp)
	if !json.Valid([]byte(resp)) {
		return "", fmt.Errorf("model returned invalid JSON: %.80s", resp)
	}
	return resp, nil
}

// stripCodeFence removes a ```json fence the model sometimes adds anyway.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
