package main

import "time"

type Profile struct {
	ID             int64
	Name           string
	Birthday       string // YYYY-MM-DD
	LifeExpectancy int
	Active         bool
	CreatedAt      time.Time
}

// Symbols maps the two cell states to display glyphs.
type Symbols struct {
	Lived     string
	Remaining string
}

type RenderOptions struct {
	Birthday       string
	LifeExpectancy int
	Symbols        Symbols
	GridTitle      string
	SummaryTitle   string
	PrintSummary   bool
	ExportPath     string // empty skips the SVG export
}

const (
	defaultLifeExpectancy = 90
	minLifeExpectancy     = 1
	maxLifeExpectancy     = 100

	defaultLivedSymbol     = "×"
	defaultRemainingSymbol = "·"
	defaultGridTitle       = "the grid"
	defaultSummaryTitle    = "summary"
)

func DefaultSymbols() Symbols {
	return Symbols{Lived: defaultLivedSymbol, Remaining: defaultRemainingSymbol}
}
