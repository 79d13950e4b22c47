package youtube

import (
	"strings"

	"studytube/models"
)

// YouTube category 27 is "Education".
const educationCategoryID = "27"

var educationalKeywords = []string{
	"tutorial",
	"course",
	"lecture",
	"lesson",
	"learn",
	"education",
	"explained",
	"introduction",
	"how to",
	"guide",
	"study",
}

// FilterEducational keeps summaries whose title or description mentions an
// educational keyword. Pure function; the input slice is not modified.
func FilterEducational(videos []models.VideoSummary) []models.VideoSummary {
	out := make([]models.VideoSummary, 0, len(videos))
	for _, v := range videos {
		if isEducational(v) {
			out = append(out, v)
		}
	}
	return out
}

func isEducational(v models.VideoSummary) bool {
	text := strings.ToLower(v.Title) + " " + strings.ToLower(v.Description)
	for _, kw := range educationalKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
