package videos_test

import (
	"testing"

	"github.com/focuslearner/backend/internal/videos"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		desc     string
		filtered bool
	}{
		{name: "lecture passes", title: "Linear Algebra Lecture 3", desc: "University course", filtered: false},
		{name: "gaming filtered", title: "Epic Gaming Montage", desc: "", filtered: true},
		{name: "distraction beats educational", title: "Study with me vlog", desc: "lecture", filtered: true},
		{name: "case insensitive", title: "FUNNY cat compilation", desc: "", filtered: true},
		{name: "neutral content kept", title: "Kirchhoff's current law", desc: "", filtered: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, reason := videos.Classify(tt.title, tt.desc)
			assert.Equal(t, tt.filtered, filtered)
			if filtered {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestFilterList(t *testing.T) {
	in := []videos.Video{
		{VideoID: "1", Title: "Calculus tutorial"},
		{VideoID: "2", Title: "Top 10 pranks"},
		{VideoID: "3", Title: "Circuit theory lecture"},
	}

	out := videos.FilterList(in)

	assert.Len(t, out, 2)
	assert.Equal(t, "1", out[0].VideoID)
	assert.Equal(t, "3", out[1].VideoID)
}
