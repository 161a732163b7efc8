package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dreamcodec/internal/hardware"
)

func newHardwareCommand(ctx *commandContext) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "hardware",
		Short: "Show the detected CPU and GPU profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			monitor, err := ctx.hardwareMonitor(nil)
			if err != nil {
				return err
			}

			var profile *hardware.Profile
			if refresh {
				profile, err = monitor.Refresh(cmd.Context())
				if err != nil {
					return fmt.Errorf("refresh hardware profile: %w", err)
				}
			} else {
				cached, ok := monitor.Current()
				if !ok {
					profile, err = monitor.Refresh(cmd.Context())
					if err != nil {
						return fmt.Errorf("detect hardware: %w", err)
					}
				} else {
					profile = cached
				}
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, profile)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "CPU: %s (%d logical cores)\n", profile.CPU.Name, profile.CPU.LogicalCores)
			if !profile.GPU.Detected {
				fmt.Fprintln(out, "GPU: none detected")
				return nil
			}

			rows := make([][]string, 0, len(profile.GPU.Adapters))
			for i, adapter := range profile.GPU.Adapters {
				primary := ""
				if adapter.ID == profile.GPU.PrimaryAdapterID {
					primary = "yes"
				}
				rows = append(rows, []string{
					strconv.Itoa(i),
					adapter.Name,
					string(adapter.Type),
					yesNo(adapter.IsVirtual),
					primary,
				})
			}
			table := renderTable([]string{"#", "Adapter", "Vendor", "Virtual", "Primary"}, rows, 0)
			fmt.Fprintln(out, table)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Re-detect hardware instead of using the cached profile")
	return cmd
}
