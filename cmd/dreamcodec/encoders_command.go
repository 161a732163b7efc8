package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dreamcodec/internal/encoders"
	"dreamcodec/internal/hardware"
)

func newEncodersCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "encoders",
		Short: "List the video encoders available for conversion",
		RunE: func(cmd *cobra.Command, args []string) error {
			prefStore, err := ctx.preferenceStore()
			if err != nil {
				return err
			}
			prefs := prefStore.Load()

			monitor, err := ctx.hardwareMonitor(nil)
			if err != nil {
				return err
			}
			var profile *hardware.Profile
			if cached, ok := monitor.Current(); ok {
				profile = cached
			}

			available, err := encoders.Probe(cmd.Context(), "")
			probed := err == nil
			if !probed {
				available = encoders.DefaultSet()
			}

			list := available
			if !all {
				list = encoders.Filter(available, profile, prefs.GpuPreference)
			}

			preferred, _ := encoders.ResolvePreferredGpuType(prefs.GpuPreference, profile)
			defaultEnc, hasDefault := encoders.PickDefault(list, preferred)

			if ctx.jsonOutput() {
				return writeJSON(cmd, list)
			}

			out := cmd.OutOrStdout()
			if !probed {
				fmt.Fprintln(out, "ffmpeg probe failed; showing the built-in fallback set")
			}

			rows := make([][]string, 0, len(list))
			for _, enc := range list {
				mark := ""
				if hasDefault && enc.Name == defaultEnc.Name {
					mark = "*"
				}
				rows = append(rows, []string{enc.DisplayName(), enc.Codec, string(enc.Type), mark})
			}
			table := renderTable([]string{"Encoder", "Codec", "Class", "Default"}, rows)
			fmt.Fprintln(out, table)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show every usable encoder, not just those matching the GPU preference")
	return cmd
}
