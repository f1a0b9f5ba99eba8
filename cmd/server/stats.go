package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/dsamastery/internal/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the study streak and totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, inMemory, true)
		if err != nil {
			return err
		}
		defer a.Close()

		hero := a.dashboardService.Hero(cmd.Context())
		stats := a.progressService.Stats(cmd.Context())
		out := cmd.OutOrStdout()

		lastStudy := "never"
		if stats.LastStudyDate != nil {
			lastStudy = *stats.LastStudyDate
		}

		fmt.Fprintln(out, "Statistics")
		fmt.Fprintln(out, strings.Repeat("-", 32))
		fmt.Fprintf(out, "Current streak:   %d days\n", hero.Streak)
		fmt.Fprintf(out, "Longest streak:   %d days\n", hero.LongestStreak)
		fmt.Fprintf(out, "Last studied:     %s\n", lastStudy)
		fmt.Fprintf(out, "Study days:       %d\n", len(stats.StudyDays))
		fmt.Fprintf(out, "Topics covered:   %d/%d\n", hero.TopicsCovered, hero.TopicsTotal)
		fmt.Fprintf(out, "Concepts done:    %d/%d\n", hero.ConceptsDone, hero.ConceptsTotal)
		fmt.Fprintf(out, "Problems solved:  %d/%d\n", hero.ProblemsSolved, hero.ProblemsTotal)
		for _, d := range models.Difficulties {
			fmt.Fprintf(out, "  %-14s  %d/%d\n", d, hero.SolvedByDifficulty[d], hero.CatalogByDifficulty[d])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
