package jianpu

import (
	"testing"

	"github.com/jsphweid/jianpu/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note(class int, octave int, kind model.DurationKind) model.Note {
	return model.Note{
		Pitch:    model.Pitch{Class: class, Octave: octave},
		Duration: model.Duration{Kind: kind},
	}
}

func TestConvertRejectsWrongHandCount(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		score := model.Score{Hands: make([]model.Hand, n)}
		_, _, err := Convert(score)
		assert.True(t, errors.Is(err, ErrUnsupportedHandCount), "hands: %d", n)
	}
}

func TestConvertTwoHands(t *testing.T) {
	score := model.Score{
		Hands: []model.Hand{
			{{model.NewNote(note(0, 4, model.Quarter)), model.NewNote(note(4, 4, model.Eighth))}},
			{{model.NewChord(note(0, 3, model.Half), note(7, 3, model.Half))}},
		},
	}
	block, text, err := Convert(score)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(block, 1)
	assert.Equal("1 3\u0332 |    \n1\u0323 -5\u0323 - |\n\n", text)
}

func TestConvertEmptyHand(t *testing.T) {
	var top model.Hand
	for i := 0; i < 7; i++ {
		top = append(top, model.Measure{model.NewNote(note(9, 4, model.Quarter))})
	}
	block, text, err := Convert(model.Score{Hands: []model.Hand{top, nil}})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(block, 2)
	assert.Equal("6 | 6 | 6 | 6 | 6 |\n                   \n\n6 | 6 |\n       \n\n", text)
}
