package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/focuslearner/backend/internal/logger"
)

// Gemini generates activity content through the Gemini API. The client is
// created lazily so constructing the provider never does network I/O.
type Gemini struct {
	apiKey string
	model  string
	client *genai.Client
	static *Static
	log    *logger.Logger
}

// NewGemini creates a Gemini-backed provider. Parse and transport failures
// fall back to the static provider's content, never to a learner-visible
// error.
func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{
		apiKey: apiKey,
		model:  model,
		static: NewStatic(),
		log:    logger.Default().WithPrefix("gemini"),
	}
}

func (g *Gemini) ensureClient(ctx context.Context) (*genai.Client, error) {
	if g.client != nil {
		return g.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.client = client
	return client, nil
}

func (g *Gemini) Generate(ctx context.Context, subject, topic, activityType string) (Activity, error) {
	log := logger.FromContext(ctx).WithPrefix("gemini")

	prompt, ok := activityPrompt(subject, topic, activityType)
	if !ok {
		log.Warn("no prompt for activity type %q, using static content", activityType)
		return g.static.Generate(ctx, subject, topic, activityType)
	}

	text, err := g.generateText(ctx, prompt)
	if err != nil {
		log.Warn("generation failed, using static content: %v", err)
		return g.static.Generate(ctx, subject, topic, activityType)
	}

	fields, err := parseJSONDocument(text)
	if err != nil {
		log.Warn("unparseable generation output, using static content: %v", err)
		return g.static.Generate(ctx, subject, topic, activityType)
	}
	fields["type"] = activityType

	log.Debug("generated %s activity for %s/%s", activityType, subject, topic)
	return Activity{Type: activityType, Fields: fields}, nil
}

func (g *Gemini) AnalyzeMisconception(ctx context.Context, question, learnerAnswer, expectedAnswer, subject string) (Misconception, error) {
	log := logger.FromContext(ctx).WithPrefix("gemini")

	prompt := misconceptionPrompt(question, learnerAnswer, expectedAnswer, subject)
	text, err := g.generateText(ctx, prompt)
	if err != nil {
		log.Warn("misconception analysis failed: %v", err)
		return Misconception{}, err
	}

	fields, err := parseJSONDocument(text)
	if err != nil {
		log.Warn("unparseable misconception output: %v", err)
		return Misconception{}, err
	}

	m := Misconception{
		Analysis:         stringField(fields, "analysis"),
		RemediationFocus: stringField(fields, "remediation_focus"),
	}
	if m.Analysis == "" {
		return Misconception{}, fmt.Errorf("misconception analysis missing 'analysis' field")
	}
	return m, nil
}

func (g *Gemini) generateText(ctx context.Context, prompt string) (string, error) {
	client, err := g.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	temp := float32(0.7)
	config := &genai.GenerateContentConfig{
		Temperature:      &temp,
		MaxOutputTokens:  1024,
		ResponseMIMEType: "application/json",
	}
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
	}

	result, err := client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return result.Text(), nil
}

// parseJSONDocument decodes a model response into a field map, stripping any
// markdown fencing the model added despite instructions.
func parseJSONDocument(text string) (map[string]any, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var fields map[string]any
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func stringField(fields map[string]any, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}
