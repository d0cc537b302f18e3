package midi

import (
	"sort"

	"github.com/jsphweid/jianpu/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrNoNotes = errors.New("midi file has no notes")
var ErrUnsupportedTimeFormat = errors.New("only metric time formats are supported")

const drumChannel = 9

type Options struct {
	// used only when a single track holds all the notes
	SplitPitch uint8
}

type span struct {
	key   uint8
	start int64
	end   int64
}

type part []span

// ToScore turns every track with (non drum) notes into a hand. A file with a
// single such track is split in two at opts.SplitPitch.
func ToScore(s *smf.SMF, opts Options) (model.Score, model.Meter, error) {
	var score model.Score

	tf, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || tf == 0 {
		return score, model.DefaultMeter, ErrUnsupportedTimeFormat
	}
	ticks4th := int64(tf)

	meter := findMeter(s)

	var parts []part
	var lastTick int64
	for _, track := range s.Tracks {
		p, end := collectSpans(track)
		if end > lastTick {
			lastTick = end
		}
		if len(p) > 0 {
			parts = append(parts, p)
		}
	}

	if len(parts) == 0 {
		return score, meter, ErrNoNotes
	}
	if len(parts) == 1 {
		parts = splitPart(parts[0], opts.SplitPitch)
	}

	measureTicks := ticks4th * 4 * int64(meter.Num) / int64(meter.Den)
	if measureTicks <= 0 {
		measureTicks = ticks4th * 4
	}
	// a note starting on the last tick still needs a measure of its own
	numMeasures := int((lastTick + measureTicks - 1) / measureTicks)
	for _, p := range parts {
		for _, sp := range p {
			if n := int(sp.start/measureTicks) + 1; n > numMeasures {
				numMeasures = n
			}
		}
	}

	for _, p := range parts {
		score.Hands = append(score.Hands, buildHand(p, numMeasures, measureTicks, ticks4th))
	}
	return score, meter, nil
}

func findMeter(s *smf.SMF) model.Meter {
	for _, track := range s.Tracks {
		for _, ev := range track {
			var num, denom uint8
			if ev.Message.GetMetaMeter(&num, &denom) && num > 0 && denom > 0 {
				return model.Meter{Num: int(num), Den: int(denom)}
			}
		}
	}
	return model.DefaultMeter
}

// collectSpans pairs note on/off messages. Notes still sounding at the end of
// the track end there.
func collectSpans(track smf.Track) (part, int64) {
	var res part
	var absTicks int64
	sounding := make(map[uint16][]int64)

	noteOff := func(channel, key uint8) {
		id := uint16(channel)<<8 | uint16(key)
		starts := sounding[id]
		if len(starts) == 0 {
			return
		}
		res = append(res, span{key: key, start: starts[0], end: absTicks})
		sounding[id] = starts[1:]
	}

	for _, ev := range track {
		absTicks += int64(ev.Delta)
		var channel, key, velocity uint8
		switch {
		case ev.Message.GetNoteOn(&channel, &key, &velocity):
			if channel == drumChannel {
				continue
			}
			if velocity == 0 {
				noteOff(channel, key)
				continue
			}
			id := uint16(channel)<<8 | uint16(key)
			sounding[id] = append(sounding[id], absTicks)
		case ev.Message.GetNoteOff(&channel, &key, &velocity):
			noteOff(channel, key)
		}
	}

	for id, starts := range sounding {
		for _, start := range starts {
			res = append(res, span{key: uint8(id & 0xff), start: start, end: absTicks})
		}
	}

	sort.Slice(res, func(i, j int) bool {
		if res[i].start != res[j].start {
			return res[i].start < res[j].start
		}
		return res[i].key < res[j].key
	})
	return res, absTicks
}

func splitPart(p part, splitPitch uint8) []part {
	var top, bottom part
	for _, sp := range p {
		if sp.key >= splitPitch {
			top = append(top, sp)
		} else {
			bottom = append(bottom, sp)
		}
	}
	return []part{top, bottom}
}

func buildHand(p part, numMeasures int, measureTicks int64, ticks4th int64) model.Hand {
	hand := make(model.Hand, numMeasures)
	restTicks := ticks4th / 4

	// cursor carries over so a note held across the bar line is not a rest
	var cursor int64
	i := 0
	for m := 0; m < numMeasures; m++ {
		measureStart := int64(m) * measureTicks
		measureEnd := measureStart + measureTicks
		if cursor < measureStart {
			cursor = measureStart
		}
		measure := model.Measure{}

		for i < len(p) && p[i].start < measureEnd {
			onset := p[i].start
			if onset-cursor >= restTicks {
				measure = append(measure, model.NewOther())
			}

			var notes []model.Note
			var longest int64
			for i < len(p) && p[i].start == onset {
				length := p[i].end - p[i].start
				notes = append(notes, model.Note{
					Pitch:    PitchOf(p[i].key),
					Duration: Quantize(length, ticks4th),
				})
				if length > longest {
					longest = length
				}
				i++
			}

			if len(notes) == 1 {
				measure = append(measure, model.NewNote(notes[0]))
			} else {
				measure = append(measure, model.NewChord(notes...))
			}
			if onset+longest > cursor {
				cursor = onset + longest
			}
		}

		if measureEnd-cursor >= restTicks {
			measure = append(measure, model.NewOther())
		}
		hand[m] = measure
	}
	return hand
}

// PitchOf maps a MIDI key to pitch class and octave, key 60 is C4.
func PitchOf(key uint8) model.Pitch {
	return model.Pitch{
		Class:  int(key) % 12,
		Octave: int(key)/12 - 1,
	}
}

type gridValue struct {
	duration model.Duration
	quarters float64
}

var durationGrid = buildGrid()

func buildGrid() []gridValue {
	kinds := []struct {
		kind     model.DurationKind
		quarters float64
	}{
		{model.Whole, 4},
		{model.Half, 2},
		{model.Quarter, 1},
		{model.Eighth, 0.5},
		{model.Sixteenth, 0.25},
	}

	var grid []gridValue
	for _, k := range kinds {
		grid = append(grid,
			gridValue{model.Duration{Kind: k.kind}, k.quarters},
			gridValue{model.Duration{Kind: k.kind, Dots: 1}, k.quarters * 1.5},
			gridValue{model.Duration{Kind: k.kind, Dots: 2}, k.quarters * 1.75},
		)
	}
	return grid
}

// Quantize picks the written value closest to a length in ticks. Ties go to
// the longer, less dotted value.
func Quantize(ticks int64, ticks4th int64) model.Duration {
	quarters := float64(ticks) / float64(ticks4th)
	best := durationGrid[0]
	bestDiff := abs(quarters - best.quarters)
	for _, g := range durationGrid[1:] {
		if diff := abs(quarters - g.quarters); diff < bestDiff {
			best = g
			bestDiff = diff
		}
	}
	return best.duration
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
