package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"agolink/internal/history"
)

func newProgramsCommand(ctx *commandContext) *cobra.Command {
	programsCmd := &cobra.Command{
		Use:   "programs",
		Short: "Inspect programs uploaded from this host",
	}
	programsCmd.AddCommand(newProgramsListCommand(ctx))
	return programsCmd
}

func newProgramsListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List uploaded programs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *history.Store) error {
				uploads, err := store.ListUploads(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					if uploads == nil {
						uploads = []*history.Upload{}
					}
					return writeJSON(cmd, uploads)
				}
				if len(uploads) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No programs uploaded")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable(
					[]string{"Device File", "Name", "Method", "Uploaded"},
					programRows(uploads),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func programRows(uploads []*history.Upload) [][]string {
	rows := make([][]string, 0, len(uploads))
	for _, upload := range uploads {
		uploaded := ""
		if !upload.CreatedAt.IsZero() {
			uploaded = upload.CreatedAt.Local().Format(time.DateTime)
		}
		rows = append(rows, []string{upload.DeviceFilename, upload.DisplayName, upload.Method, uploaded})
	}
	return rows
}
