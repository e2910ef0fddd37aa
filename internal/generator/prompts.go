package generator

import "fmt"

func activityPrompt(subject, topic, activityType string) (string, bool) {
	switch activityType {
	case "coding":
		return fmt.Sprintf(`Generate a coding challenge for %s - %s.
Return ONLY raw JSON, no markdown fencing, with:
- "title": string
- "description": string (problem statement)
- "starter_code": string
- "test_cases": array of objects { "input": string, "output": string }
- "solution": string (complete solution code)
- "points": 100`, subject, topic), true

	case "lab":
		return fmt.Sprintf(`Generate a virtual lab scenario for %s - %s.
Return ONLY raw JSON, no markdown fencing, with:
- "title": string
- "scenario": string (detailed setup)
- "steps": array of strings (what the learner does)
- "question": string (what they must observe or conclude)
- "options": array of 4 strings
- "correct_answer": string (must exactly match one option)
- "explanation": string`, subject, topic), true

	case "crossword":
		return fmt.Sprintf(`Generate a crossword puzzle for %s - %s.
Return ONLY raw JSON, no markdown fencing, with:
- "title": string
- "words": array of at least 5 objects { "word": string (uppercase), "clue": string }
- "answer": string (the words joined by commas, in order)`, subject, topic), true

	case "generic":
		return fmt.Sprintf(`Generate a short problem-solving challenge for %s - %s.
Return ONLY raw JSON, no markdown fencing, with:
- "question": string
- "input_type": "text" or "numeric"
- "answer": string
- "hints": array of 2 strings
- "points": 50`, subject, topic), true
	}
	return "", false
}

func misconceptionPrompt(question, learnerAnswer, expectedAnswer, subject string) string {
	return fmt.Sprintf(`A student answered a %s question incorrectly.
Question: %s
Student answer: %s
Expected answer: %s

Diagnose the likely misconception. Return ONLY raw JSON, no markdown fencing, with:
- "analysis": string (2-3 encouraging sentences naming the misconception)
- "remediation_focus": string (the single concept to review before retrying)`,
		subject, question, learnerAnswer, expectedAnswer)
}
