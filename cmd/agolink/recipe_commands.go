package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"agolink/internal/config"
	"agolink/internal/recipe"
)

func newRecipeCommand(ctx *commandContext) *cobra.Command {
	recipeCmd := &cobra.Command{
		Use:   "recipe",
		Short: "Recipe authoring helpers",
	}
	recipeCmd.AddCommand(newRecipeTemplateCommand(ctx))
	return recipeCmd
}

func newRecipeTemplateCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print a starter recipe using the configured temperature bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			doc := recipe.Template(recipe.Bounds{
				Min:   cfg.Temperature.DefaultMin,
				Rated: cfg.Temperature.DefaultRated,
				Max:   cfg.Temperature.DefaultMax,
			})

			target := strings.TrimSpace(outputPath)
			if target == "" {
				return writeJSON(cmd, doc)
			}

			var buf bytes.Buffer
			enc := json.NewEncoder(&buf)
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			if err := enc.Encode(doc); err != nil {
				return err
			}
			expanded, err := config.ExpandPath(target)
			if err != nil {
				return err
			}
			if err := os.WriteFile(expanded, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write template: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote recipe template to %s\n", expanded)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the template to a file instead of stdout")
	return cmd
}
