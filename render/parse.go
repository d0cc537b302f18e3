package render

import (
	"strings"

	"github.com/jsphweid/jianpu/constants"
	"github.com/pkg/errors"
)

var ErrMalformedNotation = errors.New("malformed notation text")

// Pair is one row index of the notation text split into bars.
type Pair struct {
	Top    []string
	Bottom []string
}

// Parse reads text in the shape produced by align.ToText: pairs of lines
// separated by a blank line. Each line is cut at the bar markers and the
// fragment after the last marker is dropped.
func Parse(text string) ([]Pair, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	body := strings.TrimSuffix(text, "\n\n")
	if body == "" {
		return nil, nil
	}

	var pairs []Pair
	for i, group := range strings.Split(body, "\n\n") {
		lines := strings.Split(group, "\n")
		if len(lines) != 2 {
			return nil, errors.Wrapf(ErrMalformedNotation, "group %d has %d lines, want 2", i, len(lines))
		}
		pairs = append(pairs, Pair{
			Top:    splitBars(lines[0]),
			Bottom: splitBars(lines[1]),
		})
	}
	return pairs, nil
}

func splitBars(line string) []string {
	fragments := strings.Split(line, constants.BarMarker)
	return fragments[:len(fragments)-1]
}
