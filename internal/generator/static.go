package generator

import (
	"context"
	"fmt"
	"strings"
)

// Static is the deterministic fallback provider used when no API credential
// is configured or a live call fails. Content quality is demo-grade but the
// document shapes match the real provider's.
type Static struct{}

// NewStatic creates the static provider.
func NewStatic() *Static {
	return &Static{}
}

func (s *Static) Generate(_ context.Context, subject, topic, activityType string) (Activity, error) {
	var fields map[string]any
	switch activityType {
	case "coding":
		fields = map[string]any{
			"title":        fmt.Sprintf("Coding Practice: %s", topic),
			"description":  "Write a function that returns the sum of two numbers.",
			"starter_code": "def solve(a, b):\n    pass",
			"test_cases": []any{
				map[string]any{"input": "1, 2", "output": "3"},
			},
			"solution": "def solve(a, b):\n    return a + b",
			"points":   100,
		}
	case "lab":
		fields = map[string]any{
			"title":          fmt.Sprintf("Virtual Lab: %s", topic),
			"scenario":       "You are mixing Acid A with Base B.",
			"steps":          []any{"Mix", "Observe", "Record"},
			"question":       "What happens?",
			"options":        []any{"Explosion", "Neutralization", "Nothing", "Precipitation"},
			"correct_answer": "Neutralization",
			"explanation":    "An acid and a base react to neutralize each other.",
		}
	case "crossword":
		fields = map[string]any{
			"title": fmt.Sprintf("Crossword: %s", topic),
			"words": []any{
				map[string]any{"word": "THEORY", "clue": "A well-tested explanation"},
				map[string]any{"word": "METHOD", "clue": "A systematic procedure"},
				map[string]any{"word": "CONCEPT", "clue": "A fundamental idea"},
				map[string]any{"word": "PROOF", "clue": "Establishes a claim"},
				map[string]any{"word": "MODEL", "clue": "A simplified representation"},
			},
			"answer": "THEORY,METHOD,CONCEPT,PROOF,MODEL",
		}
	default:
		fields = staticProblem(subject)
	}
	fields["type"] = activityType
	return Activity{Type: activityType, Fields: fields}, nil
}

// staticProblem picks a generic problem by coarse subject family.
func staticProblem(subject string) map[string]any {
	switch {
	case strings.Contains(subject, "Math") || strings.Contains(subject, "Alg"):
		return map[string]any{
			"question":   "What comes next in the sequence: 2, 4, 8, 16, ...?",
			"input_type": "numeric",
			"answer":     "32",
			"hints":      []any{"Multiply the previous number by 2", "Powers of 2"},
			"points":     50,
		}
	case strings.Contains(subject, "CS") || strings.Contains(subject, "Comp"):
		return map[string]any{
			"question":   "Convert the binary number 101 to decimal.",
			"input_type": "numeric",
			"answer":     "5",
			"hints":      []any{"4 + 0 + 1", "Binary is base 2"},
			"points":     50,
		}
	default:
		return map[string]any{
			"question":   "Unscramble this word related to writing: 'RGMRAAM'",
			"input_type": "text",
			"answer":     "grammar",
			"hints":      []any{"Rules of language", "It is what this prompt uses"},
			"points":     50,
		}
	}
}

func (s *Static) AnalyzeMisconception(_ context.Context, _, _, _, subject string) (Misconception, error) {
	return Misconception{
		Analysis:         fmt.Sprintf("Your answer suggests a gap in a core %s concept. Slow down and re-derive the result step by step.", subject),
		RemediationFocus: "key concept review",
	}, nil
}
