package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func fixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

func newTestApp(t *testing.T, now time.Time) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := NewApp(Output{Out: &stdout, Err: &stderr}, fixedClock(now), discardLogger(), filepath.Join(t.TempDir(), "thegrid.db"))
	t.Cleanup(func() { app.Close() })
	return app, &stdout, &stderr
}

func defaultOptions(birthday string) RenderOptions {
	return RenderOptions{
		Birthday:       birthday,
		LifeExpectancy: defaultLifeExpectancy,
		Symbols:        DefaultSymbols(),
		GridTitle:      defaultGridTitle,
		SummaryTitle:   defaultSummaryTitle,
	}
}

var jan2024 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestRenderGrid(t *testing.T) {
	app, stdout, _ := newTestApp(t, jan2024)

	if err := app.Render(defaultOptions("2000-01-01")); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := ansi.Strip(stdout.String())
	if got := strings.Count(out, "×"); got != 1252 {
		t.Fatalf("expected 1252 lived weeks, got %d", got)
	}
	if got := strings.Count(out, "·"); got != 4680-1252 {
		t.Fatalf("expected %d remaining weeks, got %d", 4680-1252, got)
	}
	if !strings.Contains(out, "─ the grid ─") {
		t.Fatal("grid title missing")
	}
	if !strings.Contains(out, "─ 2000-2090 ─") {
		t.Fatal("year range subtitle missing")
	}
	if strings.Contains(out, "weeks lived.") {
		t.Fatal("summary printed without being requested")
	}

	// borders, padding and 90 rows
	if lines := strings.Split(strings.TrimRight(out, "\n"), "\n"); len(lines) != 90+4 {
		t.Fatalf("expected %d lines, got %d", 90+4, len(lines))
	}
}

func TestRenderWithSummary(t *testing.T) {
	app, stdout, _ := newTestApp(t, jan2024)

	opts := defaultOptions("2000-01-01")
	opts.PrintSummary = true
	opts.SummaryTitle = "so far"
	if err := app.Render(opts); err != nil {
		t.Fatalf("Render: %v", err)
	}

	lines := strings.Split(ansi.Strip(stdout.String()), "\n")
	if !strings.HasPrefix(lines[0], "╭─ so far ") {
		t.Fatalf("summary panel should come first, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "─ the grid ─") {
		t.Fatalf("grid panel should sit beside the summary, got %q", lines[0])
	}
	out := strings.Join(lines, "\n")
	for _, want := range []string{"1252 weeks lived.", "3428 weeks left."} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestRenderCustomSymbols(t *testing.T) {
	app, stdout, _ := newTestApp(t, jan2024)

	opts := defaultOptions("2023-01-01")
	opts.LifeExpectancy = 2
	opts.Symbols = Symbols{Lived: "#", Remaining: "-"}
	if err := app.Render(opts); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := ansi.Strip(stdout.String())
	// 365 days is 52 weeks
	if !strings.Contains(out, strings.Repeat("#", 52)) || !strings.Contains(out, strings.Repeat("-", 52)) {
		t.Fatalf("expected one full lived row and one full remaining row:\n%s", out)
	}
}

func TestRenderLifespanExceeded(t *testing.T) {
	app, stdout, _ := newTestApp(t, time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC))

	opts := defaultOptions("1990-01-01")
	opts.LifeExpectancy = 1
	err := app.Render(opts)
	if !errors.Is(err, ErrLifespanExceeded) {
		t.Fatalf("expected ErrLifespanExceeded, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("no output expected, got:\n%s", stdout.String())
	}
}

func TestRenderFutureBirthday(t *testing.T) {
	app, stdout, _ := newTestApp(t, jan2024)

	opts := defaultOptions("2030-01-01")
	opts.PrintSummary = true
	if err := app.Render(opts); err != nil {
		t.Fatalf("a future birthday should render, got %v", err)
	}

	out := ansi.Strip(stdout.String())
	if strings.Contains(out, "×") {
		t.Fatal("no week should be marked lived")
	}
	if got := strings.Count(out, "·"); got != 4680 {
		t.Fatalf("expected 4680 remaining weeks, got %d", got)
	}
	for _, want := range []string{"0 weeks lived.", "4680 weeks left.", "2030-2120"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderExactLifespanAccepted(t *testing.T) {
	birth := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	app, stdout, _ := newTestApp(t, birth.Add(52*7*day))

	opts := defaultOptions("2000-01-01")
	opts.LifeExpectancy = 1
	if err := app.Render(opts); err != nil {
		t.Fatalf("a full grid should render, got %v", err)
	}
	if got := strings.Count(stdout.String(), "×"); got != 52 {
		t.Fatalf("expected 52 lived weeks, got %d", got)
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		edit func(*RenderOptions)
		want error
	}{
		{"malformed birthday", func(o *RenderOptions) { o.Birthday = "2000/01/01" }, ErrInvalidDateFormat},
		{"zero years", func(o *RenderOptions) { o.LifeExpectancy = 0 }, ErrLifeExpectancyRange},
		{"too many years", func(o *RenderOptions) { o.LifeExpectancy = 101 }, ErrLifeExpectancyRange},
		{"empty symbol", func(o *RenderOptions) { o.Symbols.Lived = "" }, ErrInvalidSymbol},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app, stdout, _ := newTestApp(t, jan2024)
			opts := defaultOptions("2000-01-01")
			tc.edit(&opts)

			if err := app.Render(opts); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if stdout.Len() != 0 {
				t.Fatalf("no output expected, got:\n%s", stdout.String())
			}
		})
	}
}

func TestRenderExportsSVG(t *testing.T) {
	app, stdout, _ := newTestApp(t, jan2024)

	opts := defaultOptions("2000-01-01")
	opts.PrintSummary = true
	opts.ExportPath = filepath.Join(t.TempDir(), "grid.svg")
	if err := app.Render(opts); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if stdout.Len() == 0 {
		t.Fatal("export should not replace console output")
	}

	data, err := os.ReadFile(opts.ExportPath)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), "1252 weeks lived.") {
		t.Fatal("export does not contain the recorded output")
	}
}

func TestRenderDoesNotOpenStore(t *testing.T) {
	app, _, _ := newTestApp(t, jan2024)

	if err := app.Render(defaultOptions("2000-01-01")); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, err := os.Stat(app.dbPath); !os.IsNotExist(err) {
		t.Fatalf("profile database should not be created by a plain render, stat err: %v", err)
	}
}

func TestApplyActiveProfile(t *testing.T) {
	app, _, _ := newTestApp(t, jan2024)

	opts := defaultOptions("")
	if err := app.ApplyActiveProfile(&opts, false); !errors.Is(err, ErrMissingBirthday) {
		t.Fatalf("expected ErrMissingBirthday, got %v", err)
	}

	if err := app.SaveProfile("me", "2000-01-01", 80); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	opts = defaultOptions("")
	if err := app.ApplyActiveProfile(&opts, false); err != nil {
		t.Fatalf("ApplyActiveProfile: %v", err)
	}
	if opts.Birthday != "2000-01-01" || opts.LifeExpectancy != 80 {
		t.Fatalf("profile not applied: %+v", opts)
	}

	// an explicit life expectancy wins over the profile
	opts = defaultOptions("")
	opts.LifeExpectancy = 50
	app.ApplyActiveProfile(&opts, true)
	if opts.LifeExpectancy != 50 {
		t.Fatalf("explicit life expectancy overridden: %d", opts.LifeExpectancy)
	}
}

func TestSaveProfileValidates(t *testing.T) {
	app, _, _ := newTestApp(t, jan2024)

	if err := app.SaveProfile("me", "not a date", 90); !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
	}
	if err := app.SaveProfile("me", "2000-01-01", 200); !errors.Is(err, ErrLifeExpectancyRange) {
		t.Fatalf("expected ErrLifeExpectancyRange, got %v", err)
	}
}

func TestSavedProfileRendersLikeFlags(t *testing.T) {
	app, stdout, _ := newTestApp(t, jan2024)

	// a future birthday is accepted when saved and when rendered
	if err := app.SaveProfile("soon", "2030-01-01", 90); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	opts := defaultOptions("")
	if err := app.ApplyActiveProfile(&opts, false); err != nil {
		t.Fatalf("ApplyActiveProfile: %v", err)
	}
	stdout.Reset()
	if err := app.Render(opts); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(stdout.String(), "2030-2120") {
		t.Fatalf("saved profile not rendered:\n%s", stdout.String())
	}
}

func TestUseProfilePicksInteractively(t *testing.T) {
	app, stdout, _ := newTestApp(t, jan2024)
	app.SaveProfile("a", "2000-01-01", 90)
	app.SaveProfile("b", "2001-01-01", 90)

	var offered []string
	app.pickProfile = func(names []string) string {
		offered = names
		return "a"
	}

	if err := app.UseProfile(""); err != nil {
		t.Fatalf("UseProfile: %v", err)
	}
	if len(offered) != 2 || offered[0] != "a" || offered[1] != "b" {
		t.Fatalf("unexpected choices: %v", offered)
	}
	if !strings.Contains(stdout.String(), "Changed profile to: a (born 2000-01-01, 90 years)") {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}

	app.pickProfile = func([]string) string { return "" }
	if err := app.UseProfile(""); err == nil {
		t.Fatal("expected an error when nothing is picked")
	}

	// an unknown name leaves the active profile alone
	if err := app.UseProfile("nobody"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	active, err := app.repo.GetActiveProfile()
	if err != nil || active == nil || active.Name != "a" {
		t.Fatalf("expected a to stay active, got %+v (%v)", active, err)
	}
}

func TestListAndRemoveProfiles(t *testing.T) {
	app, stdout, _ := newTestApp(t, jan2024)

	if err := app.ListProfiles(); err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if !strings.Contains(stdout.String(), "No saved profiles.") {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}

	app.SaveProfile("me", "2000-01-01", 90)
	stdout.Reset()
	if err := app.ListProfiles(); err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "me") || !strings.Contains(out, "2000-01-01") || !strings.Contains(out, "*") {
		t.Fatalf("unexpected listing:\n%s", out)
	}

	if err := app.RemoveProfile("me"); err != nil {
		t.Fatalf("RemoveProfile: %v", err)
	}
	if err := app.RemoveProfile("me"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
