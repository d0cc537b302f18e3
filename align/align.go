package align

import (
	"strings"

	"github.com/jsphweid/jianpu/model"
	"github.com/jsphweid/jianpu/util"
)

// Align pairs the rows of both hands by index. A hand that runs out of rows
// contributes "" and the shorter row of each pair is padded with spaces.
func Align(top []model.Row, bottom []model.Row) model.NotationBlock {
	n := util.Max(len(top), len(bottom))
	block := make(model.NotationBlock, 0, n)

	for i := 0; i < n; i++ {
		var pair model.RowPair
		if i < len(top) {
			pair.Top = top[i]
		}
		if i < len(bottom) {
			pair.Bottom = bottom[i]
		}

		width := util.Max(util.RuneLen(pair.Top), util.RuneLen(pair.Bottom))
		pair.Top = util.PadRight(pair.Top, width)
		pair.Bottom = util.PadRight(pair.Bottom, width)
		block = append(block, pair)
	}

	return block
}

// ToText writes every pair as two lines followed by a blank line.
func ToText(block model.NotationBlock) string {
	var sb strings.Builder
	for _, pair := range block {
		sb.WriteString(pair.Top)
		sb.WriteString("\n")
		sb.WriteString(pair.Bottom)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
