package videos

import "strings"

// Keyword lists for the rule-based educational content filter. Distraction
// terms override educational ones.
var distractionKeywords = []string{
	"vlog", "prank", "gaming", "playthrough", "walkthrough",
	"funny", "comedy", "meme", "reaction", "trending",
	"entertainment", "music video", "song", "dance",
	"cooking", "recipe", "travel", "vacation", "lifestyle",
	"beauty", "makeup", "fashion", "shopping", "haul", "unboxing",
	"gossip", "celebrity", "sports", "football",
	"basketball", "soccer", "cricket", "movie", "trailer",
	"asmr", "satisfying",
}

var educationalKeywords = []string{
	"tutorial", "lecture", "course", "lesson", "explanation", "theory",
	"concept", "example", "problem", "solution", "practice", "exercise",
	"study", "learn", "education", "academic",
	"university", "college", "professor", "instructor", "teacher",
}

// Classify decides whether a video should be filtered out of the content
// cache. It returns (filtered, reason).
func Classify(title, description string) (bool, string) {
	text := strings.ToLower(title + " " + description)

	for _, kw := range distractionKeywords {
		if strings.Contains(text, kw) {
			return true, "distraction keyword: " + kw
		}
	}
	for _, kw := range educationalKeywords {
		if strings.Contains(text, kw) {
			return false, ""
		}
	}
	// No signal either way: keep the video rather than over-filter.
	return false, ""
}

// FilterList drops filtered videos from a candidate list.
func FilterList(in []Video) []Video {
	out := make([]Video, 0, len(in))
	for _, v := range in {
		if filtered, _ := Classify(v.Title, v.Description); !filtered {
			out = append(out, v)
		}
	}
	return out
}
