package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

type TerminalTheme struct {
	Background string
	Foreground string
}

var DefaultTerminalTheme = TerminalTheme{
	Background: "#000000",
	Foreground: "#ffffff",
}

// snapshot geometry, in px
const (
	svgCharWidth  = 10
	svgLineHeight = 20
	svgFontSize   = 16
	svgMargin     = 20
	svgChrome     = 40 // title bar holding the window buttons
)

var windowButtons = []string{"#ff5f57", "#febc2e", "#28c840"}

// ExportSVG writes text as a terminal snapshot to path. ANSI sequences are
// stripped; the snapshot is drawn in the theme's colors.
func ExportSVG(path, text string, theme TerminalTheme) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create svg file: %w", err)
	}

	w := bufio.NewWriter(f)
	writeSnapshot(w, text, theme)

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write svg file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close svg file: %w", err)
	}
	return nil
}

func writeSnapshot(w *bufio.Writer, text string, theme TerminalTheme) {
	lines := strings.Split(strings.TrimRight(ansi.Strip(text), "\n"), "\n")

	cols := 0
	for _, line := range lines {
		if n := runewidth.StringWidth(line); n > cols {
			cols = n
		}
	}

	width := cols*svgCharWidth + 2*svgMargin
	height := len(lines)*svgLineHeight + 2*svgMargin + svgChrome

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Roundrect(0, 0, width, height, 8, 8, "fill:"+theme.Background)
	for i, color := range windowButtons {
		canvas.Circle(svgMargin+i*22, svgChrome/2, 6, "fill:"+color)
	}

	textStyle := fmt.Sprintf("font-family:monospace;font-size:%dpx;fill:%s;white-space:pre", svgFontSize, theme.Foreground)
	for i, line := range lines {
		y := svgChrome + svgMargin + (i+1)*svgLineHeight - (svgLineHeight-svgFontSize)/2
		canvas.Text(svgMargin, y, line, `xml:space="preserve"`, textStyle)
	}
	canvas.End()
}
