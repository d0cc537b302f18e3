package cmd

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReconvertsOnChange(t *testing.T) {
	t.Setenv("JIANPU_METADATA_TABLE", "")
	input := writeFixture(t, "song.xml", []byte(twoPartsXML))
	opts := convertOptions{input: input, outDir: t.TempDir(), textOnly: true}

	results := make(chan error, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, opts, 10*time.Millisecond, 20*time.Millisecond, func(res convertResult, err error) {
			results <- err
		})
	}()

	select {
	case err := <-results:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial conversion")
	}

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(input, later, later))

	select {
	case err := <-results:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("no conversion after change")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestWatchDropsPendingConversionOnCancel(t *testing.T) {
	t.Setenv("JIANPU_METADATA_TABLE", "")
	input := writeFixture(t, "song.xml", []byte(twoPartsXML))
	opts := convertOptions{input: input, outDir: t.TempDir(), textOnly: true}

	results := make(chan error, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, opts, 5*time.Millisecond, 200*time.Millisecond, func(res convertResult, err error) {
			results <- err
		})
	}()

	select {
	case err := <-results:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial conversion")
	}

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(input, later, later))
	time.Sleep(50 * time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	time.Sleep(400 * time.Millisecond)
	assert.Empty(t, results)
}

func TestWatchMissingFile(t *testing.T) {
	err := watch(context.Background(), convertOptions{input: "does/not/exist.mid"}, time.Millisecond, time.Millisecond, func(convertResult, error) {})
	assert.Error(t, err)
}
