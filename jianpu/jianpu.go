// Package jianpu runs the conversion from a two-hand score to Jianpu
// notation text: one row builder per hand, then the aligner.
package jianpu

import (
	"github.com/jsphweid/jianpu/align"
	"github.com/jsphweid/jianpu/bar"
	"github.com/jsphweid/jianpu/model"
	"github.com/pkg/errors"
)

var ErrUnsupportedHandCount = errors.New("score must have exactly two hands")

// Convert builds the rows of both hands and aligns them. A hand without
// measures is fine, the other hand's rows are paired with "".
func Convert(score model.Score) (model.NotationBlock, string, error) {
	if len(score.Hands) != 2 {
		return nil, "", errors.Wrapf(ErrUnsupportedHandCount, "got %d", len(score.Hands))
	}

	// the hands are independent until Align
	rows := make([][]model.Row, 2)
	done := make(chan struct{})
	go func() {
		rows[1] = bar.BuildRows(score.Hands[1])
		close(done)
	}()
	rows[0] = bar.BuildRows(score.Hands[0])
	<-done

	block := align.Align(rows[0], rows[1])
	return block, align.ToText(block), nil
}
