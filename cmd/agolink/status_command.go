package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"agolink/internal/preflight"
	"agolink/internal/wifi"
)

type statusReport struct {
	Checks []preflight.Result `json:"checks"`
	Wifi   wifi.Status        `json:"wifi"`
	Ready  bool               `json:"ready"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show host readiness and device reachability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			opCtx := ctx.operation(cmd, "status")

			report := statusReport{
				Checks: preflight.RunAll(opCtx, cfg),
				Wifi:   ctx.associator(nil).Status(opCtx),
			}
			report.Ready = len(preflight.Failed(report.Checks)) == 0

			if jsonOutput {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			rows := make([][]string, 0, len(report.Checks))
			for _, check := range report.Checks {
				rows = append(rows, []string{check.Name, statusKindLabel(preflightKind(check)), check.Detail})
			}
			for _, line := range renderSectionHeader("Readiness", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprint(out, renderTable([]string{"Check", "Result", "Detail"}, rows, nil))
			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Device network", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range wifiStatusLines(report.Wifi, cfg.Device.SSID, colorize) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
