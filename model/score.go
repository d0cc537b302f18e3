package model

// DurationKind is the written note value, independent of dots.
type DurationKind uint8

const (
	UnknownDuration DurationKind = iota
	Whole
	Half
	Quarter
	Eighth
	Sixteenth
)

var durationKindNames = map[DurationKind]string{
	Whole:     "whole",
	Half:      "half",
	Quarter:   "quarter",
	Eighth:    "eighth",
	Sixteenth: "16th",
}

func (k DurationKind) String() string {
	if name, ok := durationKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseDurationKind accepts the MusicXML <type> names.
func ParseDurationKind(name string) DurationKind {
	for k, v := range durationKindNames {
		if v == name {
			return k
		}
	}
	if name == "sixteenth" {
		return Sixteenth
	}
	return UnknownDuration
}

// Pitch is a pitch class (0-11, 0 = C) within a scientific octave (C4 = middle C).
type Pitch struct {
	Class  int
	Octave int
}

type Duration struct {
	Kind DurationKind
	Dots int
}

type Note struct {
	Pitch    Pitch
	Duration Duration
}

type EventKind uint8

const (
	// OtherEvent covers rests, dynamics and anything else without a token.
	OtherEvent EventKind = iota
	NoteEvent
	ChordEvent
)

// Event is a closed variant: a single note, a chord of notes sharing one
// onset, or something that only takes up a slot.
type Event struct {
	Kind  EventKind
	Notes []Note
}

func NewNote(n Note) Event {
	return Event{Kind: NoteEvent, Notes: []Note{n}}
}

func NewChord(notes ...Note) Event {
	return Event{Kind: ChordEvent, Notes: notes}
}

func NewOther() Event {
	return Event{Kind: OtherEvent}
}

type Measure []Event

// Hand is one part of the score, top (index 0) or bottom (index 1).
type Hand []Measure

// Score carries the hands plus the key and time labels produced by
// analysis. Labels are passed through untouched.
type Score struct {
	Hands []Hand
	Key   string
	Time  string
}

// Meter is the time signature of the source, 4/4 when the source has none.
type Meter struct {
	Num int
	Den int
}

var DefaultMeter = Meter{Num: 4, Den: 4}
