package main

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

func PrintTable(w io.Writer, headers []string, rows [][]string) {
	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := runewidth.StringWidth(cell); n > colWidths[i] {
				colWidths[i] = n
			}
		}
	}

	// print header
	printRow(w, headers, colWidths)

	// print rows
	for _, row := range rows {
		printRow(w, row, colWidths)
	}
}

func printRow(w io.Writer, cells []string, colWidths []int) {
	for i, cell := range cells {
		fmt.Fprintf(w, "%s\t", runewidth.FillRight(cell, colWidths[i]))
	}
	fmt.Fprintln(w)
}
