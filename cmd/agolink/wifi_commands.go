package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agolink/internal/history"
	"agolink/internal/wifi"
)

func newWifiCommand(ctx *commandContext) *cobra.Command {
	wifiCmd := &cobra.Command{
		Use:   "wifi",
		Short: "Inspect and manage the host's Wi-Fi association",
	}

	wifiCmd.AddCommand(newWifiInterfaceCommand(ctx))
	wifiCmd.AddCommand(newWifiCurrentCommand(ctx))
	wifiCmd.AddCommand(newWifiConnectCommand(ctx))
	wifiCmd.AddCommand(newWifiReconnectCommand(ctx))
	wifiCmd.AddCommand(newWifiProbeCommand(ctx))
	wifiCmd.AddCommand(newWifiStatusCommand(ctx))
	wifiCmd.AddCommand(newWifiJoinCommand(ctx))
	wifiCmd.AddCommand(newWifiLeaveCommand(ctx))

	return wifiCmd
}

func newWifiInterfaceCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interface",
		Short: "Print the Wi-Fi hardware device name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			iface, err := ctx.wifiManager().DiscoverInterface(ctx.operation(cmd, "wifi_interface"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), iface)
			return nil
		},
	}
}

func newWifiCurrentCommand(ctx *commandContext) *cobra.Command {
	var ifaceFlag string

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Print the SSID the Wi-Fi interface is associated with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opCtx := ctx.operation(cmd, "wifi_current")
			manager := ctx.wifiManager()
			iface, err := resolveInterface(cmd, manager, ifaceFlag)
			if err != nil {
				return err
			}
			ssid, err := manager.CurrentNetwork(opCtx, iface)
			if err != nil {
				return err
			}
			if ssid == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Not connected")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ssid)
			return nil
		},
	}

	cmd.Flags().StringVarP(&ifaceFlag, "interface", "i", "", "Wi-Fi device name (discovered when omitted)")
	return cmd
}

func newWifiConnectCommand(ctx *commandContext) *cobra.Command {
	var ifaceFlag string
	var password string

	cmd := &cobra.Command{
		Use:   "connect <ssid>",
		Short: "Join a Wi-Fi network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opCtx := ctx.operation(cmd, "wifi_connect")
			manager := ctx.wifiManager()
			iface, err := resolveInterface(cmd, manager, ifaceFlag)
			if err != nil {
				return err
			}
			ssid := strings.TrimSpace(args[0])
			if err := manager.Connect(opCtx, iface, ssid, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connected to %s\n", ssid)
			return nil
		},
	}

	cmd.Flags().StringVarP(&ifaceFlag, "interface", "i", "", "Wi-Fi device name (discovered when omitted)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Network password")
	return cmd
}

func newWifiReconnectCommand(ctx *commandContext) *cobra.Command {
	var ifaceFlag string
	var password string

	cmd := &cobra.Command{
		Use:   "reconnect <ssid>",
		Short: "Return to a previously used Wi-Fi network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opCtx := ctx.operation(cmd, "wifi_reconnect")
			manager := ctx.wifiManager()
			iface, err := resolveInterface(cmd, manager, ifaceFlag)
			if err != nil {
				return err
			}
			ssid := strings.TrimSpace(args[0])
			if err := manager.Reconnect(opCtx, iface, ssid, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reconnected to %s\n", ssid)
			return nil
		},
	}

	cmd.Flags().StringVarP(&ifaceFlag, "interface", "i", "", "Wi-Fi device name (discovered when omitted)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Network password")
	return cmd
}

func newWifiProbeCommand(ctx *commandContext) *cobra.Command {
	var ipFlag string

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check whether the device answers over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ip := strings.TrimSpace(ipFlag)
			if ip == "" {
				ip = ctx.configValue().Device.IP
			}
			if ctx.wifiManager().ProbeDevice(ctx.operation(cmd, "wifi_probe"), ip) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s reachable\n", ip)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s unreachable\n", ip)
			return nil
		},
	}

	cmd.Flags().StringVar(&ipFlag, "ip", "", "Device address (defaults to device.ip)")
	return cmd
}

func newWifiStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the host can reach the device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status := ctx.associator(nil).Status(ctx.operation(cmd, "wifi_status"))
			if jsonOutput {
				return writeJSON(cmd, status)
			}
			out := cmd.OutOrStdout()
			for _, line := range wifiStatusLines(status, ctx.configValue().Device.SSID, shouldColorize(out)) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newWifiJoinCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join the device network, remembering the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *history.Store) error {
				status, err := ctx.associator(store).Join(ctx.operation(cmd, "join"))
				if printErr := printAssociation(cmd, status, jsonOutput); printErr != nil {
					return printErr
				}
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newWifiLeaveCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Leave the device network and restore the previous one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *history.Store) error {
				status, err := ctx.associator(store).Leave(ctx.operation(cmd, "leave"))
				if printErr := printAssociation(cmd, status, jsonOutput); printErr != nil {
					return printErr
				}
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func resolveInterface(cmd *cobra.Command, manager *wifi.Manager, flagValue string) (string, error) {
	if iface := strings.TrimSpace(flagValue); iface != "" {
		return iface, nil
	}
	return manager.DiscoverInterface(cmd.Context())
}

func printAssociation(cmd *cobra.Command, status wifi.Status, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(cmd, status)
	}
	if status.Message != "" {
		fmt.Fprintln(cmd.OutOrStdout(), status.Message)
	}
	return nil
}
