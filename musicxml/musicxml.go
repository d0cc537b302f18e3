// Package musicxml reads partwise MusicXML into a score. The first two parts
// are the hands and any further parts are ignored. A single part written on
// two staves is split by staff, and a single one-staff part is a melody with
// an empty bottom hand.
package musicxml

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jsphweid/jianpu/model"
	"github.com/pkg/errors"
	xml "github.com/subchen/go-xmldom"
)

var ErrNoParts = errors.New("musicxml has no parts")
var ErrTimewise = errors.New("timewise musicxml is not supported")

var stepClasses = map[string]int{
	"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
}

func ReadFile(path string) (model.Score, model.Meter, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Score{}, model.DefaultMeter, errors.Wrap(err, "error opening musicxml file")
	}
	defer f.Close()
	return Read(f)
}

func Read(r io.Reader) (model.Score, model.Meter, error) {
	var score model.Score
	meter := model.DefaultMeter

	doc, err := xml.Parse(r)
	if err != nil {
		return score, meter, errors.Wrap(err, "error parsing musicxml")
	}
	if doc.Root == nil {
		return score, meter, ErrNoParts
	}
	if doc.Root.Name == "score-timewise" {
		return score, meter, ErrTimewise
	}

	parts := doc.Root.GetChildren("part")
	if len(parts) == 0 {
		return score, meter, ErrNoParts
	}

	if len(parts) > 2 {
		parts = parts[:2]
	}

	meterFound := false
	for _, part := range parts {
		for _, measure := range part.GetChildren("measure") {
			if m, ok := findMeter(measure); ok && !meterFound {
				meter = m
				meterFound = true
			}
		}
	}

	if len(parts) == 1 {
		if countStaves(parts[0]) == 2 {
			score.Hands = readPart(parts[0], 2)
		} else {
			score.Hands = []model.Hand{readPart(parts[0], 1)[0], {}}
		}
		return score, meter, nil
	}

	for _, part := range parts {
		score.Hands = append(score.Hands, readPart(part, 1)[0])
	}
	return score, meter, nil
}

func findMeter(measure *xml.Node) (model.Meter, bool) {
	for _, attrs := range measure.GetChildren("attributes") {
		tm := attrs.GetChild("time")
		if tm == nil {
			continue
		}
		num := intText(tm.GetChild("beats"), 0)
		den := intText(tm.GetChild("beat-type"), 0)
		if num > 0 && den > 0 {
			return model.Meter{Num: num, Den: den}, true
		}
	}
	return model.DefaultMeter, false
}

func countStaves(part *xml.Node) int {
	for _, measure := range part.GetChildren("measure") {
		for _, attrs := range measure.GetChildren("attributes") {
			if staves := intText(attrs.GetChild("staves"), 0); staves > 0 {
				return staves
			}
		}
	}
	return 1
}

// readPart returns one hand per staff. With a single staff every note goes
// to the first hand whatever its <staff> says.
func readPart(part *xml.Node, staves int) []model.Hand {
	hands := make([]model.Hand, staves)

	for _, measure := range part.GetChildren("measure") {
		measures := make([]model.Measure, staves)
		for i := range measures {
			measures[i] = model.Measure{}
		}

		for _, child := range measure.Children {
			if child.Name != "note" || child.GetChild("grace") != nil {
				continue
			}

			staff := 0
			if staves > 1 {
				staff = intText(child.GetChild("staff"), 1) - 1
				if staff < 0 || staff >= staves {
					staff = 0
				}
			}
			measures[staff] = addNote(measures[staff], child)
		}

		for i := range hands {
			hands[i] = append(hands[i], measures[i])
		}
	}
	return hands
}

func addNote(measure model.Measure, note *xml.Node) model.Measure {
	pitch := note.GetChild("pitch")
	if note.GetChild("rest") != nil || pitch == nil {
		return append(measure, model.NewOther())
	}

	n := model.Note{
		Pitch: readPitch(pitch),
		Duration: model.Duration{
			Kind: model.ParseDurationKind(text(note.GetChild("type"))),
			Dots: len(note.GetChildren("dot")),
		},
	}

	last := len(measure) - 1
	if note.GetChild("chord") == nil || last < 0 || measure[last].Kind == model.OtherEvent {
		return append(measure, model.NewNote(n))
	}

	prev := measure[last]
	notes := append(append([]model.Note{}, prev.Notes...), n)
	measure[last] = model.NewChord(notes...)
	return measure
}

// the class wraps into 0-11 but the written octave is kept, B#4 is class 0
// in octave 4
func readPitch(pitch *xml.Node) model.Pitch {
	class := stepClasses[strings.ToUpper(text(pitch.GetChild("step")))]
	class += intText(pitch.GetChild("alter"), 0)
	return model.Pitch{
		Class:  ((class % 12) + 12) % 12,
		Octave: intText(pitch.GetChild("octave"), 4),
	}
}

func text(n *xml.Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Text)
}

func intText(n *xml.Node, fallback int) int {
	s := text(n)
	if s == "" {
		return fallback
	}
	// alter may be written as a decimal, microtones are dropped
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return fallback
}
