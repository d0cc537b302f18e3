package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const twoPartsXML = `<?xml version="1.0" encoding="UTF-8"?>
<score-partwise version="3.0">
  <part id="P1">
    <measure number="1">
      <attributes><time><beats>3</beats><beat-type>4</beat-type></time></attributes>
      <note><pitch><step>C</step><octave>5</octave></pitch><type>quarter</type></note>
      <note><pitch><step>E</step><octave>4</octave></pitch><type>eighth</type></note>
      <note><rest/><type>eighth</type></note>
      <note><pitch><step>F</step><alter>1</alter><octave>4</octave></pitch><type>quarter</type></note>
    </measure>
  </part>
  <part id="P2">
    <measure number="1">
      <note><pitch><step>C</step><octave>3</octave></pitch><type>half</type><dot/></note>
      <note><chord/><pitch><step>G</step><octave>3</octave></pitch><type>half</type><dot/></note>
      <note><chord/><pitch><step>E</step><octave>3</octave></pitch><type>half</type><dot/></note>
    </measure>
  </part>
</score-partwise>`

const twoPartsNotation = "1\u0307 3\u0332   |        \n" +
	"1\u0323 -\u20225\u0323 -\u20223\u0323 -\u2022 |\n\n"

const onePartXML = `<score-partwise><part id="P1"><measure>
  <note><pitch><step>C</step><octave>4</octave></pitch><type>quarter</type></note>
</measure></part></score-partwise>`

const onePartNotation = "1 |\n   \n\n"

// twoHandMidi is a single track that gets split at middle C.
func twoHandMidi(t *testing.T) []byte {
	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 64, 100), midi.NoteOn(0, 48, 100))
	tr.Add(1920, midi.NoteOff(0, 64), midi.NoteOff(0, 48))
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	require.NoError(t, s.Add(tr))

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

// threeTrackMidi has a note on each of three tracks, one hand too many.
func threeTrackMidi(t *testing.T) []byte {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	for _, key := range []uint8{72, 60, 48} {
		var tr smf.Track
		tr.Add(0, midi.NoteOn(0, key, 100))
		tr.Add(480, midi.NoteOff(0, key))
		tr.Close(0)
		require.NoError(t, s.Add(tr))
	}

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func writeFixture(t *testing.T, name string, data []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}
