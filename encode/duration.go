package encode

import (
	"strings"

	"github.com/jsphweid/jianpu/constants"
	"github.com/jsphweid/jianpu/model"
)

var durationSuffixes = map[model.DurationKind]string{
	model.Whole:     " - - -",
	model.Half:      " -",
	model.Quarter:   "",
	model.Eighth:    constants.LowLine,
	model.Sixteenth: constants.LowLine + constants.LowLine,
}

// Duration returns the suffix written after the degree. Dots are appended as
// bullets, except a double-dotted half which has its own shape.
func Duration(d model.Duration) string {
	base, ok := durationSuffixes[d.Kind]
	if !ok {
		return ""
	}

	if d.Kind == model.Half && d.Dots == 2 {
		return " - -" + constants.LowLine
	}
	if d.Dots > 0 {
		return base + strings.Repeat(constants.Bullet, d.Dots)
	}
	return base
}
