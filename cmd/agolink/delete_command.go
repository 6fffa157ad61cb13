package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agolink/internal/history"
	"agolink/internal/logging"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var ipFlag string

	cmd := &cobra.Command{
		Use:   "delete <device-filename>",
		Short: "Delete an uploaded program from the device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ip := strings.TrimSpace(ipFlag)
			if ip == "" {
				ip = ctx.configValue().Device.IP
			}
			filename := strings.TrimSpace(args[0])

			orchestrator, err := ctx.orchestrator()
			if err != nil {
				return err
			}
			message, err := orchestrator.DeleteProgram(ctx.operation(cmd, "delete"), ip, filename)
			if err != nil {
				return err
			}

			err = ctx.withStore(func(store *history.Store) error {
				_, err := store.RemoveUpload(cmd.Context(), filename)
				return err
			})
			if err != nil {
				logging.WarnWithContext(ctx.log(), "deleted program left in history", "history_write_failed",
					logging.Error(err),
					logging.String("device_filename", filename),
					logging.String(logging.FieldImpact, "programs list still shows the deleted program"),
				)
			}

			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}

	cmd.Flags().StringVar(&ipFlag, "ip", "", "Device address (defaults to device.ip)")
	return cmd
}
