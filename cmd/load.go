package cmd

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/jsphweid/jianpu/analysis"
	"github.com/jsphweid/jianpu/constants"
	"github.com/jsphweid/jianpu/metadata"
	"github.com/jsphweid/jianpu/midi"
	"github.com/jsphweid/jianpu/model"
	"github.com/jsphweid/jianpu/musicxml"
)

const (
	formatMidi     = "midi"
	formatMusicXML = "musicxml"
)

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml", ".musicxml":
		return formatMusicXML
	}
	return formatMidi
}

// readScore decodes a source and attaches the key and time labels.
func readScore(r io.Reader, format string, splitPitch uint8) (model.Score, error) {
	var score model.Score
	var meter model.Meter
	var err error

	if format == formatMusicXML {
		score, meter, err = musicxml.Read(r)
	} else {
		parsed, readErr := midi.ReadMidi(r)
		if readErr != nil {
			return score, readErr
		}
		score, meter, err = midi.ToScore(parsed, midi.Options{SplitPitch: splitPitch})
	}
	if err != nil {
		return score, err
	}

	score = analysis.Label(score, meter)
	logger.Debug("read score",
		"format", format,
		"hands", len(score.Hands),
		"key", score.Key,
		"time", score.Time)
	return score, nil
}

// lookupTitle asks the metadata table for a title and falls back silently.
func lookupTitle(ctx context.Context, path string, fallback string) string {
	table := constants.GetMetadataTable()
	if table == "" {
		return fallback
	}

	cfg := aws.NewConfig()
	if endpoint := constants.GetMetadataEndpoint(); endpoint != "" {
		cfg = cfg.WithEndpoint(endpoint)
	}
	store, err := metadata.New(cfg, table)
	if err != nil {
		logger.Warn("metadata lookup disabled", "error", err)
		return fallback
	}

	md, err := store.Get(ctx, filepath.Base(path))
	if err != nil || md.Title == "" {
		logger.Debug("no title in metadata", "file", path, "error", err)
		return fallback
	}
	return md.Title
}
