package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlsorensen/labelcue"
)

var scanCmd = &cobra.Command{
	Use:   "scan [name-prefix...]",
	Short: "List nearby devices advertising the BLE UART service",
	Long: `Scan for peripherals that advertise the Nordic UART service, plus any
whose name starts with one of the given prefixes. Useful to check that a
running labelcue (or a micro:bit / Calliope) is visible.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		duration, _ := cmd.Flags().GetDuration("duration")

		devices, err := labelcue.Scan(cmd.Context(), duration, logger.Named("scan"), args...)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(devices) == 0 {
			fmt.Fprintln(out, "No devices found.")
			return nil
		}
		for i, d := range devices {
			fmt.Fprintf(out, "%d: %s\n", i+1, d.Name)
			fmt.Fprintf(out, "   ID:   %s\n", d.ID())
			fmt.Fprintf(out, "   RSSI: %d\n", d.RSSI)
			fmt.Fprintf(out, "   UART: %t\n\n", d.UART)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().Duration("duration", 10*time.Second, "how long to listen")
}
