package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// GridWidth is the number of weeks in a grid row (one row per year).
const GridWidth = 52

// Grid holds one row of glyphs per year of life expectancy.
type Grid [][]string

func TotalWeeks(lifeExpectancy int) int {
	return lifeExpectancy * GridWidth
}

// BuildGrid fills the grid in row-major order, the first weeksLived cells as lived.
// A weeksLived beyond the grid is rejected rather than clamped.
func BuildGrid(weeksLived, lifeExpectancy int, symbols Symbols) (Grid, error) {
	if weeksLived > TotalWeeks(lifeExpectancy) {
		return nil, &LifespanError{LifeExpectancy: lifeExpectancy, WeeksLived: weeksLived}
	}

	grid := make(Grid, lifeExpectancy)
	for i := range grid {
		row := make([]string, GridWidth)
		for j := range row {
			if i*GridWidth+j < weeksLived {
				row[j] = symbols.Lived
			} else {
				row[j] = symbols.Remaining
			}
		}
		grid[i] = row
	}
	return grid, nil
}

func (g Grid) Render() string {
	lines := make([]string, len(g))
	for i, row := range g {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

func RenderSummary(weeksLived, totalWeeks int) string {
	return fmt.Sprintf("%d weeks lived.\n%d weeks left.", weeksLived, totalWeeks-weeksLived)
}

// Validate checks both glyphs are non-empty, printable and at most two columns wide.
func (s Symbols) Validate() error {
	if err := validateGlyph(s.Lived); err != nil {
		return fmt.Errorf("lived symbol %q: %w", s.Lived, err)
	}
	if err := validateGlyph(s.Remaining); err != nil {
		return fmt.Errorf("left symbol %q: %w", s.Remaining, err)
	}
	return nil
}

func validateGlyph(glyph string) error {
	for _, r := range glyph {
		if !unicode.IsPrint(r) && r != '\u200d' && !unicode.Is(unicode.Variation_Selector, r) {
			return ErrInvalidSymbol
		}
	}
	if w := runewidth.StringWidth(glyph); w < 1 || w > 2 {
		return ErrInvalidSymbol
	}
	return nil
}
