package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dom/pokedex-web/internal/domain"
	"github.com/dom/pokedex-web/internal/render"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <name-or-id>",
	Short: "Show one Pokémon with its stats and evolution chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, _, err := loadServices()
		if err != nil {
			return err
		}

		out, err := services.Navigation.SearchInline(cmd.Context(), args[0])
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("no Pokémon matches %q", args[0])
			}
			return err
		}

		p := out.Pokemon
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "#%d %s [%s]\n", p.ID, render.Title(p.Name), strings.Join(p.Types, ", "))
		fmt.Fprintf(w, "Height: %s  Weight: %s  Base Experience: %d\n",
			render.FormatHeight(p.Height), render.FormatWeight(p.Weight), p.BaseExperience)
		for _, s := range p.Stats {
			fmt.Fprintf(w, "  %-16s %3d\n", render.StatLabel(s.Name), s.Base)
		}
		fmt.Fprintln(w, chainLine(out.Stages))

		prev, hasPrev, next, hasNext := services.Navigation.Neighbours(p.ID)
		if hasPrev {
			fmt.Fprintf(w, "Previous: #%d  ", prev)
		}
		if hasNext {
			fmt.Fprintf(w, "Next: #%d", next)
		}
		fmt.Fprintln(w)
		return nil
	},
}

var evolutionCmd = &cobra.Command{
	Use:   "evolution <name-or-id>",
	Short: "Print the flattened evolution chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, _, err := loadServices()
		if err != nil {
			return err
		}

		p, err := services.Navigation.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		seq, err := services.Evolution.ResolveChain(cmd.Context(), p)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(seq, " -> "))
		return nil
	},
}

func chainLine(stages []domain.EvolutionStage) string {
	if len(stages) <= 1 {
		return "No evolution chain available"
	}
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = render.Title(s.Name)
		if s.Pokemon != nil {
			names[i] = fmt.Sprintf("%s (#%d)", names[i], s.Pokemon.ID)
		}
	}
	return "Evolution: " + strings.Join(names, " -> ")
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(evolutionCmd)
}
