package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/jianpu/constants"
	"github.com/jsphweid/jianpu/jianpu"
	"github.com/jsphweid/jianpu/render"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	input      string
	outDir     string
	title      string
	splitPitch uint8
	textOnly   bool
}

type convertResult struct {
	notation string
	textPath string
	htmlPath string
}

var convertOpts convertOptions

func init() {
	rootCmd.AddCommand(convertCmd)
	f := convertCmd.Flags()
	f.StringVarP(&convertOpts.outDir, "out", "o", constants.GetOutDir(), "output directory")
	f.StringVarP(&convertOpts.title, "title", "t", "", "page title (defaults to the input path)")
	f.Uint8Var(&convertOpts.splitPitch, "split-pitch", constants.DefaultSplitPitch, "lowest MIDI key of the top hand when a file has one track")
	f.BoolVar(&convertOpts.textOnly, "text-only", false, "skip the HTML page")
}

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Converts a MIDI or MusicXML file",
	Long: `Converts a MIDI or MusicXML file to Jianpu notation. The notation text
is printed and written to <out>/<name>.txt, the page to <out>/<name>.html.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := convertOpts
		opts.input = args[0]
		res, err := convertFile(cmd.Context(), opts)
		if err != nil {
			return err
		}
		fmt.Print(res.notation)
		fmt.Printf("Jianpu notation has been saved to %v\n", res.textPath)
		if res.htmlPath != "" {
			fmt.Printf("Jianpu page has been saved to %v\n", res.htmlPath)
		}
		return nil
	},
}

func convertFile(ctx context.Context, opts convertOptions) (convertResult, error) {
	var res convertResult
	if ctx == nil {
		ctx = context.Background()
	}

	f, err := os.Open(opts.input)
	if err != nil {
		return res, errors.Wrap(err, "could not open input")
	}
	defer f.Close()

	score, err := readScore(f, formatOf(opts.input), opts.splitPitch)
	if err != nil {
		return res, errors.Wrapf(err, "could not read %v", opts.input)
	}

	_, notation, err := jianpu.Convert(score)
	if err != nil {
		return res, errors.Wrapf(err, "could not convert %v", opts.input)
	}
	res.notation = notation

	if err := os.MkdirAll(opts.outDir, 0755); err != nil {
		return res, errors.Wrap(err, "could not create output dir")
	}
	name := strings.TrimSuffix(filepath.Base(opts.input), filepath.Ext(opts.input))

	res.textPath = filepath.Join(opts.outDir, name+".txt")
	if err := os.WriteFile(res.textPath, []byte(notation), 0644); err != nil {
		return res, errors.Wrap(err, "write failed for notation")
	}
	logger.Info("wrote notation", "path", res.textPath)

	if opts.textOnly {
		return res, nil
	}

	title := opts.title
	if title == "" {
		title = lookupTitle(ctx, opts.input, opts.input)
	}
	res.htmlPath = filepath.Join(opts.outDir, name+".html")
	if err := writePage(res.htmlPath, notation, title, score.Key, score.Time); err != nil {
		return res, err
	}
	return res, nil
}

// writePage writes the HTML page and a default stylesheet beside it unless
// one is already there. Nothing is written when the notation does not render.
func writePage(path string, notation string, title string, keyLabel string, timeLabel string) error {
	page, err := render.Render(notation, title, keyLabel, timeLabel)
	if err != nil {
		return errors.Wrap(err, "could not render page")
	}
	if err := os.WriteFile(path, []byte(page), 0644); err != nil {
		return errors.Wrap(err, "write failed for page")
	}
	logger.Info("wrote page", "path", path)

	cssPath := filepath.Join(filepath.Dir(path), constants.StylesheetName)
	if _, err := os.Stat(cssPath); err == nil {
		return nil
	}
	if err := os.WriteFile(cssPath, []byte(render.Stylesheet), 0644); err != nil {
		return errors.Wrap(err, "write failed for stylesheet")
	}
	return nil
}
