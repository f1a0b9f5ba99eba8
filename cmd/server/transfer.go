package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportOutput string
	resetYes     bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the progress record as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, inMemory, false)
		if err != nil {
			return err
		}
		defer a.Close()

		data, err := a.progressService.Export(cmd.Context())
		if err != nil {
			return err
		}
		if exportOutput == "" || exportOutput == "-" {
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOutput, err)
		}
		a.log.Info("progress exported to %s", exportOutput)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the progress record with an exported one (\"-\" reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		a, err := newApp(cmd.Context(), cfg, inMemory, false)
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.progressService.Import(cmd.Context(), data)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d topics, %d concepts completed, %d problems solved\n",
			len(rec.Topics), rec.Stats.TotalConceptsCompleted, rec.Stats.TotalProblemsSolved)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all progress and reading history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to reset without --yes")
		}
		a, err := newApp(cmd.Context(), cfg, inMemory, false)
		if err != nil {
			return err
		}
		defer a.Close()

		a.progressService.Reset(cmd.Context())
		a.contentService.ResetReading(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "progress reset")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "file to write (default stdout)")
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the reset")
	rootCmd.AddCommand(exportCmd, importCmd, resetCmd)
}
