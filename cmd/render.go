package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/jianpu/render"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var renderTitle, renderKey, renderTime, renderOut string

func init() {
	rootCmd.AddCommand(renderCmd)
	f := renderCmd.Flags()
	f.StringVarP(&renderTitle, "title", "t", "", "page title (defaults to the input path)")
	f.StringVar(&renderKey, "key", "", "key label, e.g. 1=C")
	f.StringVar(&renderTime, "time", "", "time label, e.g. 4/4")
	f.StringVarP(&renderOut, "out", "o", "", "output file (defaults to <input>.html, - for stdout)")
}

var renderCmd = &cobra.Command{
	Use:   "render <notation.txt>",
	Short: "Lays out notation text as an HTML page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		dat, err := os.ReadFile(input)
		if err != nil {
			return errors.Wrap(err, "could not read notation")
		}

		title := renderTitle
		if title == "" {
			title = input
		}
		out := renderOut
		if out == "-" {
			return render.Write(cmd.OutOrStdout(), string(dat), title, renderKey, renderTime)
		}
		if out == "" {
			out = strings.TrimSuffix(input, filepath.Ext(input)) + ".html"
		}
		return writePage(out, string(dat), title, renderKey, renderTime)
	},
}
