package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/jianpu/constants"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var watchOpts convertOptions
var watchInterval, watchDelay time.Duration

func init() {
	rootCmd.AddCommand(watchCmd)
	f := watchCmd.Flags()
	f.StringVarP(&watchOpts.outDir, "out", "o", constants.GetOutDir(), "output directory")
	f.StringVarP(&watchOpts.title, "title", "t", "", "page title (defaults to the input path)")
	f.Uint8Var(&watchOpts.splitPitch, "split-pitch", constants.DefaultSplitPitch, "lowest MIDI key of the top hand when a file has one track")
	f.DurationVar(&watchInterval, "interval", 500*time.Millisecond, "how often the file is checked")
	f.DurationVar(&watchDelay, "debounce", time.Second, "quiet time before reconverting")
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Reconverts a file whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := watchOpts
		opts.input = args[0]
		return watch(ctx, opts, watchInterval, watchDelay, func(res convertResult, err error) {
			if err != nil {
				logger.Error("conversion failed", "file", opts.input, "error", err)
				return
			}
			fmt.Printf("Updated %v\n", res.htmlPath)
		})
	},
}

// watch polls the input's modification time and converts once a burst of
// writes has settled. It converts once up front and returns when ctx is done,
// after any conversion in flight has finished.
func watch(ctx context.Context, opts convertOptions, interval time.Duration, delay time.Duration, onResult func(convertResult, error)) error {
	info, err := os.Stat(opts.input)
	if err != nil {
		return errors.Wrap(err, "could not watch input")
	}
	lastMod := info.ModTime()

	// one conversion at a time, and none once ctx is done
	var mu sync.Mutex
	stopped := false
	convert := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped || ctx.Err() != nil {
			return
		}
		res, err := convertFile(ctx, opts)
		onResult(res, err)
	}
	convert()

	debounced := debounce.New(delay)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			debounced(func() {})
			mu.Lock()
			stopped = true
			mu.Unlock()
			return nil
		case <-ticker.C:
			info, err := os.Stat(opts.input)
			if err != nil {
				logger.Debug("stat failed", "file", opts.input, "error", err)
				continue
			}
			if info.ModTime().Equal(lastMod) {
				continue
			}
			lastMod = info.ModTime()
			logger.Debug("change detected", "file", opts.input)
			debounced(convert)
		}
	}
}
