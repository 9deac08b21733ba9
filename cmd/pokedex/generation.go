package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dom/pokedex-web/internal/domain"
	"github.com/dom/pokedex-web/internal/render"
	"github.com/dom/pokedex-web/internal/service"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var quiet bool

var generationCmd = &cobra.Command{
	Use:   "generation <ordinal>",
	Short: "List every Pokémon in a generation, loading in batches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ordinal, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("generation must be a number: %w", err)
		}
		gen, err := domain.GenerationByOrdinal(ordinal)
		if err != nil {
			return fmt.Errorf("generation %d: %w", ordinal, err)
		}

		services, _, err := loadServices()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Generation %d - %s Region (#%d-#%d)\n", gen.Ordinal, gen.Region, gen.StartID, gen.EndID)

		var bar *progressbar.ProgressBar
		if !quiet {
			bar = progressbar.NewOptions(gen.Size(),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("Loading"),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		var rows []*domain.Pokemon
		err = services.Listing.ListGeneration(cmd.Context(), ordinal, func(chunk service.Chunk) error {
			rows = append(rows, chunk.Pokemon...)
			if bar != nil {
				bar.Describe(chunk.Progress())
				_ = bar.Set(chunk.Loaded)
			}
			return nil
		})
		if bar != nil {
			_ = bar.Finish()
		}
		if err != nil {
			return err
		}

		for _, p := range rows {
			fmt.Fprintf(w, "#%-5d %s\n", p.ID, render.Title(p.Name))
		}

		prev, hasPrev := domain.StepGeneration(ordinal, domain.Previous)
		next, hasNext := domain.StepGeneration(ordinal, domain.Next)
		if hasPrev {
			fmt.Fprintf(w, "Previous generation: %d  ", prev)
		}
		if hasNext {
			fmt.Fprintf(w, "Next generation: %d", next)
		}
		fmt.Fprintln(w)
		return nil
	},
}

func init() {
	generationCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
	rootCmd.AddCommand(generationCmd)
}
