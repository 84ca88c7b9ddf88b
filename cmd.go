package main

import (
	"github.com/spf13/cobra"
)

// SetupCommands builds the command tree. newApp is called once flags are
// parsed, so the database path and verbosity are known.
func SetupCommands(out Output, clock Clock, newApp func(out Output, clock Clock, dbPath string, verbose bool) *App) *cobra.Command {
	var (
		opts    RenderOptions
		dbPath  string
		verbose bool
		app     *App
	)

	// root command, renders the grid
	rootCmd := &cobra.Command{
		Use:           "thegrid",
		Short:         "Generate a grid of weeks lived based on birthday and life expectancy",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app = newApp(out, clock, dbPath, verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ApplyActiveProfile(&opts, cmd.Flags().Changed("life-expectancy")); err != nil {
				return err
			}
			return app.Render(opts)
		},
	}
	rootCmd.SetOut(out.Out)
	rootCmd.SetErr(out.Err)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dbPath, "db", DefaultDBPath(), "Path to the profile database.")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log debug information to stderr.")

	f := rootCmd.Flags()
	f.StringVar(&opts.Birthday, "birthday", "", "Birthday (format: YYYY-MM-DD), defaults to the active profile.")
	f.IntVar(&opts.LifeExpectancy, "life-expectancy", defaultLifeExpectancy, "Expected lifespan in whole years.")
	f.StringVar(&opts.GridTitle, "grid-title", defaultGridTitle, "Title for grid's panel.")
	f.StringVar(&opts.Symbols.Lived, "lived", defaultLivedSymbol, "Symbol for weeks lived.")
	f.StringVar(&opts.Symbols.Remaining, "left", defaultRemainingSymbol, "Symbol for weeks left to live.")
	f.StringVar(&opts.SummaryTitle, "summary-title", defaultSummaryTitle, "Title for summary's panel.")
	f.BoolVar(&opts.PrintSummary, "summary", false, "Display summary of weeks lived.")
	f.StringVar(&opts.ExportPath, "export-svg", "", "Path to save SVG.")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage saved birthdays",
	}

	completeProfiles := func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		if app == nil {
			app = newApp(out, clock, dbPath, verbose)
		}
		repo, err := app.store()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		names, err := repo.GetProfileNames()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}

	// command for creating or updating a profile, which becomes the active one
	var (
		saveBirthday       string
		saveLifeExpectancy int
	)
	saveCmd := &cobra.Command{
		Use:   "save [name]",
		Short: "Create or update a profile and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.SaveProfile(args[0], saveBirthday, saveLifeExpectancy)
		},
	}
	saveCmd.Flags().StringVar(&saveBirthday, "birthday", "", "Birthday (format: YYYY-MM-DD).")
	saveCmd.Flags().IntVar(&saveLifeExpectancy, "life-expectancy", defaultLifeExpectancy, "Expected lifespan in whole years.")
	saveCmd.MarkFlagRequired("birthday")

	// command for changing the active profile, interactive without a name
	useCmd := &cobra.Command{
		Use:               "use [name]",
		Short:             "Change the active profile",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeProfiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			return app.UseProfile(name)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.ListProfiles()
		},
	}

	removeCmd := &cobra.Command{
		Use:               "remove [name]",
		Short:             "Remove a saved profile",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProfiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RemoveProfile(args[0])
		},
	}

	// add commands
	profileCmd.AddCommand(saveCmd)
	profileCmd.AddCommand(useCmd)
	profileCmd.AddCommand(listCmd)
	profileCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(profileCmd)

	return rootCmd
}
