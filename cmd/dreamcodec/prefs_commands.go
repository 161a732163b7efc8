package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dreamcodec/internal/preferences"
)

func newPrefsCommand(ctx *commandContext) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change conversion preferences",
	}

	prefsCmd.AddCommand(newPrefsShowCommand(ctx))
	prefsCmd.AddCommand(newPrefsSetCommand(ctx))

	return prefsCmd
}

func newPrefsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.preferenceStore()
			if err != nil {
				return err
			}
			prefs := store.Load()

			if ctx.jsonOutput() {
				return writeJSON(cmd, prefs)
			}

			encoder := prefs.Encoder
			if encoder == "" {
				encoder = "(automatic)"
			}
			rows := [][]string{
				{"Encoder", encoder},
				{"GPU preference", prefs.GpuPreference},
				{"CPU limit", strconv.Itoa(prefs.CPULimitPercent) + "%"},
				{"Max concurrent", strconv.Itoa(prefs.MaxConcurrent)},
			}
			table := renderTable([]string{"Setting", "Value"}, rows)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func newPrefsSetCommand(ctx *commandContext) *cobra.Command {
	var (
		encoder       string
		gpuPreference string
		cpuLimit      int
		maxConcurrent int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.preferenceStore()
			if err != nil {
				return err
			}
			prefs := store.Load()

			changed := false
			if cmd.Flags().Changed("encoder") {
				prefs.Encoder = encoder
				changed = true
			}
			if cmd.Flags().Changed("gpu") {
				prefs.GpuPreference = gpuPreference
				changed = true
			}
			if cmd.Flags().Changed("cpu-limit") {
				prefs.CPULimitPercent = cpuLimit
				changed = true
			}
			if cmd.Flags().Changed("max-concurrent") {
				prefs.MaxConcurrent = maxConcurrent
				changed = true
			}
			if !changed {
				return fmt.Errorf("nothing to change; pass at least one of --encoder, --gpu, --cpu-limit, --max-concurrent")
			}

			if err := store.Save(prefs); err != nil {
				return fmt.Errorf("save preferences: %w", err)
			}

			saved := store.Load()
			if ctx.jsonOutput() {
				return writeJSON(cmd, saved)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Preferences updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&encoder, "encoder", "", "Preferred encoder name (empty for automatic selection)")
	cmd.Flags().StringVar(&gpuPreference, "gpu", "auto", `GPU preference: "auto", "cpu", or an adapter id`)
	cmd.Flags().IntVar(&cpuLimit, "cpu-limit", preferences.DefaultCPULimitPercent, "CPU usage limit percent (25, 50, 75, or 100)")
	cmd.Flags().IntVar(&maxConcurrent, "max-concurrent", preferences.DefaultMaxConcurrent, "Maximum simultaneous conversions (1-5)")
	return cmd
}
