package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/jianpu/constants"
	"github.com/jsphweid/jianpu/jianpu"
	"github.com/jsphweid/jianpu/render"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertFileWritesTextPageAndStylesheet(t *testing.T) {
	t.Setenv("JIANPU_METADATA_TABLE", "")
	input := writeFixture(t, "song.musicxml", []byte(twoPartsXML))
	outDir := filepath.Join(t.TempDir(), "out")

	res, err := convertFile(context.Background(), convertOptions{input: input, outDir: outDir})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(twoPartsNotation, res.notation)
	assert.Equal(filepath.Join(outDir, "song.txt"), res.textPath)
	assert.Equal(filepath.Join(outDir, "song.html"), res.htmlPath)

	text, err := os.ReadFile(res.textPath)
	require.NoError(t, err)
	assert.Equal(twoPartsNotation, string(text))

	page, err := os.ReadFile(res.htmlPath)
	require.NoError(t, err)
	assert.Contains(string(page), "<title>"+input+"</title>")
	assert.Contains(string(page), `<link rel="stylesheet" href="./styles.css">`)

	_, err = os.Stat(filepath.Join(outDir, constants.StylesheetName))
	assert.NoError(err)
}

func TestConvertFileKeepsExistingStylesheet(t *testing.T) {
	input := writeFixture(t, "song.mid", twoHandMidi(t))
	outDir := t.TempDir()
	cssPath := filepath.Join(outDir, constants.StylesheetName)
	require.NoError(t, os.WriteFile(cssPath, []byte("body {}"), 0644))

	_, err := convertFile(context.Background(), convertOptions{
		input:      input,
		outDir:     outDir,
		title:      "Mine",
		splitPitch: constants.DefaultSplitPitch,
	})
	require.NoError(t, err)

	css, err := os.ReadFile(cssPath)
	require.NoError(t, err)
	assert.Equal(t, "body {}", string(css))
}

func TestConvertFileTextOnly(t *testing.T) {
	input := writeFixture(t, "song.xml", []byte(twoPartsXML))
	outDir := t.TempDir()

	res, err := convertFile(context.Background(), convertOptions{input: input, outDir: outDir, textOnly: true})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Empty(res.htmlPath)
	_, err = os.Stat(filepath.Join(outDir, "song.html"))
	assert.True(os.IsNotExist(err))
}

func TestConvertFileWrongHandCount(t *testing.T) {
	input := writeFixture(t, "three.mid", threeTrackMidi(t))

	_, err := convertFile(context.Background(), convertOptions{input: input, outDir: t.TempDir()})
	assert.True(t, errors.Is(err, jianpu.ErrUnsupportedHandCount))
}

func TestConvertFileMelody(t *testing.T) {
	input := writeFixture(t, "one.xml", []byte(onePartXML))

	res, err := convertFile(context.Background(), convertOptions{input: input, outDir: t.TempDir(), title: "Tune"})
	require.NoError(t, err)
	assert.Equal(t, onePartNotation, res.notation)
}

func TestWritePageLeavesNoFileOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.html")

	err := writePage(path, "1 |\n\n", "t", "", "")
	assert.True(t, errors.Is(err, render.ErrMalformedNotation))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFormatOf(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(formatMusicXML, formatOf("a/b.XML"))
	assert.Equal(formatMusicXML, formatOf("b.musicxml"))
	assert.Equal(formatMidi, formatOf("b.mid"))
	assert.Equal(formatMidi, formatOf("b"))
}
