// Package gemini generates trivia banks with Gemini on Vertex AI.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/plus3/blockquiz/trivia"
	"google.golang.org/genai"
)

const (
	defaultRegion = "europe-west1"
	defaultModel  = "gemini-2.5-flash"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("empty gemini response")

const generatePrompt = `Write %d multiple-choice trivia questions about %s.

Answer with JSON only, no markdown, in this exact format:
[
  {"prompt": "Question text?", "options": ["first", "second", "third", "fourth"], "correct": 0}
]

Rules:
- Every question has exactly 4 options.
- "correct" is the 0-based index of the single right option.
- Keep prompts under 80 characters and options under 30 characters.
- Vary the position of the right option.`

// Generator asks Gemini for trivia questions.
type Generator struct {
	client    *genai.Client
	modelName string
}

// NewGenerator creates a generator using Application Default Credentials.
// Empty region and model fall back to the package defaults.
func NewGenerator(ctx context.Context, projectID, region, model string) (*Generator, error) {
	if region == "" {
		region = defaultRegion
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Generator{client: client, modelName: model}, nil
}

// Generate returns a catalog of up to n questions about topic.
func (g *Generator) Generate(ctx context.Context, topic string, n int) (*trivia.Catalog, error) {
	if n < 1 {
		return nil, fmt.Errorf("generate %d questions: %w", n, trivia.ErrInvalidQuestion)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: fmt.Sprintf(generatePrompt, n, topic)}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.7)),
			TopP:             genai.Ptr(float32(1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	return ParseQuestions(resp.Text(), n)
}

// ParseQuestions decodes a model response into a catalog, keeping at most n
// questions. Questions that fail validation are dropped.
func ParseQuestions(text string, n int) (*trivia.Catalog, error) {
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parse questions JSON: %w\nraw response: %s", err, text)
	}

	questions := make([]trivia.Question, 0, min(len(raw), n))
	for _, item := range raw {
		if len(questions) == n {
			break
		}
		var q trivia.Question
		if json.Unmarshal(item, &q) != nil || q.Validate() != nil {
			continue
		}
		questions = append(questions, q)
	}

	return trivia.NewCatalog(questions)
}
