package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	moodscore "github.com/willowmind/companion-backend/internal/analysis/mood"
	"github.com/willowmind/companion-backend/internal/chart"
	"github.com/willowmind/companion-backend/internal/model/mood"
)

var (
	driver string
	path   string
)

var rootCmd = &cobra.Command{
	Use:   "moodctl",
	Short: "Inspect the companion backend mood journal from the command line.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <user_id>",
	Short: "Print a user's mood entries in insertion order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		entries, err := store.History(args[0])
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no mood history found")
			return nil
		}
		for _, entry := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f\t%s\n",
				entry.Timestamp, moodscore.Score(entry.Mood), entry.Mood)
		}
		return nil
	},
}

var trendCmd = &cobra.Command{
	Use:   "trend <user_id>",
	Short: "Render a user's mood trend chart to a PNG file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		entries, err := store.History(args[0])
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("no mood history for user %q", args[0])
		}

		outDir, _ := cmd.Flags().GetString("out")
		fontPath, _ := cmd.Flags().GetString("font")
		renderer, err := chart.NewTrendRenderer(outDir, fontPath)
		if err != nil {
			return err
		}

		points := make([]chart.Point, 0, len(entries))
		for _, entry := range entries {
			day := entry.Timestamp
			if len(day) > 10 {
				day = day[:10]
			}
			points = append(points, chart.Point{Label: day, Value: moodscore.Score(entry.Mood)})
		}

		chartPath, err := renderer.Render(points)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), chartPath)
		return nil
	},
}

func openStore() (mood.Store, func(), error) {
	if driver == "sqlite" {
		store, err := mood.OpenSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
	return mood.NewFileStore(path), func() {}, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "file", "mood store driver (file or sqlite)")
	rootCmd.PersistentFlags().StringVar(&path, "path", "mood_log.json", "mood store path")
	trendCmd.Flags().String("out", ".", "directory for the rendered chart")
	trendCmd.Flags().String("font", "", "TTF font for chart labels (optional)")

	rootCmd.AddCommand(historyCmd, trendCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
