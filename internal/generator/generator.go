package generator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/focuslearner/backend/internal/logger"
)

// ManualReviewAnswer is the placeholder secret stored when the provider's
// output carried no recognizable answer key. Grading against it degrades to
// a never-matching expected answer rather than failing generation.
const ManualReviewAnswer = "manual_review"

// SecretKind tags which field of the generated document carried the expected
// answer. Extraction is a total match over this variant instead of implicit
// key probing.
type SecretKind int

const (
	SecretNone SecretKind = iota
	SecretAnswer
	SecretCorrectAnswer
	SecretSolution
)

func (k SecretKind) String() string {
	switch k {
	case SecretAnswer:
		return "answer"
	case SecretCorrectAnswer:
		return "correct_answer"
	case SecretSolution:
		return "solution"
	default:
		return "none"
	}
}

// Secret is the expected answer extracted from a generated activity.
type Secret struct {
	Kind  SecretKind
	Value string
}

// Activity is one generated activity document as returned by a provider,
// secret still embedded.
type Activity struct {
	Type   string
	Fields map[string]any
}

// Misconception is the structured analysis of a failed attempt.
type Misconception struct {
	Analysis         string `json:"analysis"`
	RemediationFocus string `json:"remediation_focus"`
}

// Provider generates activity content and misconception analyses. Both calls
// are best-effort: callers bound them with a context deadline and degrade to
// static content on error.
type Provider interface {
	Generate(ctx context.Context, subject, topic, activityType string) (Activity, error)
	AnalyzeMisconception(ctx context.Context, question, learnerAnswer, expectedAnswer, subject string) (Misconception, error)
}

// Split separates the secret expected answer from the learner-visible fields.
// Precedence when several keys are present: answer, then correct_answer, then
// solution. With none present the secret is the manual-review placeholder.
// The returned payload has all three secret-bearing keys stripped.
func Split(a Activity) (Secret, map[string]any) {
	payload := make(map[string]any, len(a.Fields))
	for k, v := range a.Fields {
		payload[k] = v
	}

	secret := Secret{Kind: SecretNone, Value: ManualReviewAnswer}
	if v, ok := a.Fields["answer"]; ok {
		secret = Secret{Kind: SecretAnswer, Value: stringify(v)}
	} else if v, ok := a.Fields["correct_answer"]; ok {
		secret = Secret{Kind: SecretCorrectAnswer, Value: stringify(v)}
	} else if v, ok := a.Fields["solution"]; ok {
		secret = Secret{Kind: SecretSolution, Value: stringify(v)}
	}

	delete(payload, "answer")
	delete(payload, "correct_answer")
	delete(payload, "solution")
	return secret, payload
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// New selects a provider: Gemini when an API key is configured, otherwise the
// deterministic static provider.
func New(apiKey, model string) Provider {
	if apiKey == "" {
		logger.Warn("GOOGLE_API_KEY not set, content generation uses static fallback data")
		return NewStatic()
	}
	return NewGemini(apiKey, model)
}
