package notebook

import (
	"regexp"
	"strconv"

	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
)

var citationMarker = regexp.MustCompile(`\[(\d+)\]`)

// Segments splits an answer around its [n] markers. A marker without a
// matching source stays in the text.
func Segments(answer string, sources []aigateway.Source) []Segment {
	byID := make(map[int]*aigateway.Source, len(sources))
	for i := range sources {
		if _, ok := byID[sources[i].ID]; !ok {
			byID[sources[i].ID] = &sources[i]
		}
	}

	var (
		segments []Segment
		text     string
		last     int
	)
	for _, m := range citationMarker.FindAllStringSubmatchIndex(answer, -1) {
		id, err := strconv.Atoi(answer[m[2]:m[3]])
		src, ok := byID[id]
		if err != nil || !ok {
			continue
		}
		text += answer[last:m[0]]
		if text != "" {
			segments = append(segments, Segment{Text: text})
			text = ""
		}
		cite := *src
		segments = append(segments, Segment{Citation: &cite})
		last = m[1]
	}

	text += answer[last:]
	if text != "" {
		segments = append(segments, Segment{Text: text})
	}
	return segments
}
