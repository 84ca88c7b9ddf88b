package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/nexidian/gocliselect"
)

// Output is where rendered panels and diagnostics go.
type Output struct {
	Out io.Writer
	Err io.Writer
}

type App struct {
	out    Output
	clock  Clock
	logger *slog.Logger
	styles Styles
	theme  TerminalTheme

	dbPath string
	repo   *Repo

	// pickProfile asks the user to choose one of names, "" means nothing chosen
	pickProfile func(names []string) string
}

func NewApp(out Output, clock Clock, logger *slog.Logger, dbPath string) *App {
	return &App{
		out:         out,
		clock:       clock,
		logger:      logger,
		styles:      DefaultStyles(lipgloss.NewRenderer(out.Out)),
		theme:       DefaultTerminalTheme,
		dbPath:      dbPath,
		pickProfile: menuPick,
	}
}

// store opens the profile database on first use.
func (a *App) store() (*Repo, error) {
	if a.repo != nil {
		return a.repo, nil
	}
	repo, err := NewRepo(a.dbPath, a.logger)
	if err != nil {
		return nil, err
	}
	a.repo = repo
	return repo, nil
}

func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// Render draws the grid (and summary) for opts. Nothing is written when any
// input is rejected.
func (a *App) Render(opts RenderOptions) error {
	if err := opts.Symbols.Validate(); err != nil {
		return err
	}

	now := a.clock.Now()
	birth, err := parseLifespan(opts.Birthday, opts.LifeExpectancy, now.Location())
	if err != nil {
		return err
	}

	totalWeeks := TotalWeeks(opts.LifeExpectancy)
	// a birthday after now has lived nothing yet
	weeksLived := max(WeeksLived(birth, now), 0)
	endYear := ProjectedEndYear(birth, opts.LifeExpectancy)
	a.logger.Debug("computed lifespan",
		"birthday", opts.Birthday,
		"weeks_lived", weeksLived,
		"total_weeks", totalWeeks,
		"end_year", endYear,
	)

	grid, err := BuildGrid(weeksLived, opts.LifeExpectancy, opts.Symbols)
	if err != nil {
		return err
	}

	var panels []string
	if opts.PrintSummary {
		panels = append(panels, a.styles.RenderPanel(Panel{
			Title:   opts.SummaryTitle,
			Content: RenderSummary(weeksLived, totalWeeks),
		}))
	}
	panels = append(panels, a.styles.RenderPanel(Panel{
		Title:    opts.GridTitle,
		Subtitle: fmt.Sprintf("%d-%d", birth.Year(), endYear),
		Content:  grid.Render(),
	}))

	rendered := JoinColumns(panels...)
	fmt.Fprintln(a.out.Out, rendered)

	if opts.ExportPath != "" {
		a.logger.Debug("exporting svg", "path", opts.ExportPath)
		if err := ExportSVG(opts.ExportPath, rendered, a.theme); err != nil {
			return err
		}
	}

	return nil
}

// ApplyActiveProfile fills a missing birthday (and, unless the caller set it,
// the life expectancy) from the active profile.
func (a *App) ApplyActiveProfile(opts *RenderOptions, lifeExpectancySet bool) error {
	if opts.Birthday != "" {
		return nil
	}

	repo, err := a.store()
	if err != nil {
		return err
	}
	p, err := repo.GetActiveProfile()
	if err != nil {
		return fmt.Errorf("failed to load active profile: %w", err)
	}
	if p == nil {
		return ErrMissingBirthday
	}

	a.logger.Debug("using active profile", "name", p.Name)
	opts.Birthday = p.Birthday
	if !lifeExpectancySet {
		opts.LifeExpectancy = p.LifeExpectancy
	}
	return nil
}

func (a *App) SaveProfile(name, birthday string, lifeExpectancy int) error {
	if _, err := parseLifespan(birthday, lifeExpectancy, a.clock.Now().Location()); err != nil {
		return err
	}

	repo, err := a.store()
	if err != nil {
		return err
	}

	existed := repo.CheckProfileExists(name)
	if err := repo.SaveProfile(Profile{Name: name, Birthday: birthday, LifeExpectancy: lifeExpectancy}, true); err != nil {
		return err
	}

	if existed {
		fmt.Fprintf(a.out.Out, "Updated and changed profile to: %s\n", name)
	} else {
		fmt.Fprintf(a.out.Out, "Created and changed profile to: %s\n", name)
	}
	return nil
}

// UseProfile activates name, or lets the user pick one when name is empty.
func (a *App) UseProfile(name string) error {
	repo, err := a.store()
	if err != nil {
		return err
	}

	if name == "" {
		names, err := repo.GetProfileNames()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("no saved profiles, use 'profile save' to create one")
		}
		name = a.pickProfile(names)
		if name == "" {
			return fmt.Errorf("no profile selected")
		}
	}

	p, err := repo.GetProfile(name)
	if err != nil {
		return err
	}
	if err := repo.SetActiveProfile(p.Name); err != nil {
		return err
	}

	fmt.Fprintf(a.out.Out, "Changed profile to: %s (born %s, %d years)\n", p.Name, p.Birthday, p.LifeExpectancy)
	return nil
}

func (a *App) ListProfiles() error {
	repo, err := a.store()
	if err != nil {
		return err
	}
	profiles, err := repo.GetAllProfiles()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Fprintln(a.out.Out, "No saved profiles.")
		return nil
	}

	headers := []string{"", "Name", "Birthday", "Life expectancy"}
	var rows [][]string
	for _, p := range profiles {
		marker := ""
		if p.Active {
			marker = "*"
		}
		rows = append(rows, []string{marker, p.Name, p.Birthday, fmt.Sprintf("%d", p.LifeExpectancy)})
	}
	PrintTable(a.out.Out, headers, rows)
	return nil
}

func (a *App) RemoveProfile(name string) error {
	repo, err := a.store()
	if err != nil {
		return err
	}
	if err := repo.DeleteProfile(name); err != nil {
		return err
	}

	fmt.Fprintf(a.out.Out, "Removed profile: %s\n", name)
	return nil
}

// parseLifespan checks the inputs shared by rendering and saved profiles.
func parseLifespan(birthday string, lifeExpectancy int, loc *time.Location) (time.Time, error) {
	if err := validateLifeExpectancy(lifeExpectancy); err != nil {
		return time.Time{}, err
	}
	return ParseBirthday(birthday, loc)
}

func validateLifeExpectancy(years int) error {
	if years < minLifeExpectancy || years > maxLifeExpectancy {
		return fmt.Errorf("%w, got %d", ErrLifeExpectancyRange, years)
	}
	return nil
}

func menuPick(names []string) string {
	menu := gocliselect.NewMenu("Choose a profile")
	for _, name := range names {
		menu.AddItem(name, name)
	}
	return menu.Display()
}
