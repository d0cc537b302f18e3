package bar

import (
	"strings"
	"unicode"

	"github.com/jsphweid/jianpu/constants"
	"github.com/jsphweid/jianpu/encode"
	"github.com/jsphweid/jianpu/model"
)

// BuildRows turns one hand into rows of constants.MeasuresPerRow measures.
// Each event is followed by a space and each measure by "| ". The last row
// holds whatever is left over and may be shorter.
func BuildRows(hand model.Hand) []model.Row {
	var rows []model.Row
	var current strings.Builder
	var measureCount int

	flush := func() {
		rows = append(rows, strings.TrimRightFunc(current.String(), unicode.IsSpace))
		current.Reset()
	}

	for _, measure := range hand {
		for _, event := range measure {
			current.WriteString(encode.Event(event))
			current.WriteString(" ")
		}
		current.WriteString(constants.MeasureTerminator)
		measureCount += 1

		if measureCount%constants.MeasuresPerRow == 0 {
			flush()
		}
	}

	if current.Len() > 0 {
		flush()
	}

	return rows
}
