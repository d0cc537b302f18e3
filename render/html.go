package render

import (
	_ "embed"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/jsphweid/jianpu/constants"
	"github.com/jsphweid/jianpu/util"
)

//go:embed styles.css
var Stylesheet string

const spacerRow = `<tr><td colspan="5" style="border-top: none; border-bottom: none;"></td></tr>`

// Render turns notation text into a standalone HTML page. Every pair is cut
// into windows of constants.BarsPerWindow bars and each window becomes its
// own table, top hand above bottom hand.
func Render(text string, title string, keyLabel string, timeLabel string) (string, error) {
	pairs, err := Parse(text)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	title = html.EscapeString(title)
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html>\n<head>\n<meta charset=\"UTF-8\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", title)
	fmt.Fprintf(&sb, "<link rel=\"stylesheet\" href=\"%s\">\n", constants.StylesheetHref)
	sb.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&sb, "<h1>%s</h1>\n", title)
	fmt.Fprintf(&sb, "<h2>%s %s</h2>\n", html.EscapeString(keyLabel), html.EscapeString(timeLabel))

	for _, pair := range pairs {
		numBars := util.Max(len(pair.Top), len(pair.Bottom))
		for start := 0; start < numBars; start += constants.BarsPerWindow {
			sb.WriteString("<table>\n")
			writeHandRow(&sb, "top-hand", pair.Top, start)
			sb.WriteString(spacerRow)
			sb.WriteString("\n")
			writeHandRow(&sb, "bottom-hand", pair.Bottom, start)
			sb.WriteString("</table>\n")
			sb.WriteString("<br>\n")
		}
	}

	sb.WriteString("</body>\n</html>")
	return sb.String(), nil
}

// Write is Render into w.
func Write(w io.Writer, text string, title string, keyLabel string, timeLabel string) error {
	doc, err := Render(text, title, keyLabel, timeLabel)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, doc)
	return err
}

// a hand with no bars in the window gets no row at all
func writeHandRow(sb *strings.Builder, class string, bars []string, start int) {
	end := util.Min(start+constants.BarsPerWindow, len(bars))
	if start >= end {
		return
	}

	fmt.Fprintf(sb, "<tr class=\"%s\">\n", class)
	for _, bar := range bars[start:end] {
		cell := util.Center(strings.TrimSpace(bar), constants.CellWidth)
		fmt.Fprintf(sb, "<td class=\"bar\">%s</td>\n", html.EscapeString(cell))
	}
	sb.WriteString("</tr>\n")
}
