package encode

import (
	"strings"

	"github.com/jsphweid/jianpu/model"
)

// Note drops the duration too when the pitch has no degree.
func Note(n model.Note) string {
	pitch := Pitch(n.Pitch)
	if pitch == "" {
		return ""
	}
	return pitch + Duration(n.Duration)
}

func Event(e model.Event) string {
	switch e.Kind {
	case model.NoteEvent:
		if len(e.Notes) == 0 {
			return ""
		}
		return Note(e.Notes[0])
	case model.ChordEvent:
		var sb strings.Builder
		for _, n := range e.Notes {
			sb.WriteString(Note(n))
		}
		return sb.String()
	case model.OtherEvent:
		return ""
	}
	return ""
}
