package encode

import (
	"strings"

	"github.com/jsphweid/jianpu/constants"
	"github.com/jsphweid/jianpu/model"
)

// diatonic degrees of the major scale, anything else has no digit
var scaleDegrees = map[int]string{
	0:  "1",
	2:  "2",
	4:  "3",
	5:  "4",
	7:  "5",
	9:  "6",
	11: "7",
}

// Pitch returns the scale degree followed by one octave dot per octave away
// from the reference octave. Non-diatonic classes give "".
func Pitch(p model.Pitch) string {
	degree, ok := scaleDegrees[p.Class]
	if !ok {
		return ""
	}

	delta := p.Octave - constants.ReferenceOctave
	switch {
	case delta > 0:
		return degree + strings.Repeat(constants.DotAbove, delta)
	case delta < 0:
		return degree + strings.Repeat(constants.DotBelow, -delta)
	}
	return degree
}
