package main

import (
	"fmt"

	"scour/internal/config"
	"scour/internal/logging"
	"scour/internal/wipe"

	"github.com/spf13/cobra"
)

var deviceYes bool

var deviceCmd = &cobra.Command{
	Use:   "device PATH",
	Short: "Wipe a raw block device (GOST R50739-95)",
	Long: `Overwrite the whole addressable range of a raw block device with a
zeros pass followed by a random pass, per GOST R50739-95. The device
node itself is left in place.

This destroys everything on the device and cannot be interrupted
safely once a pass has begun, so it refuses to run without --yes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !deviceYes {
			return fmt.Errorf("refusing to wipe %s without --yes", args[0])
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		engine := wipe.NewEngine(&wipe.EngineOptions{
			ChunkSize: cfg.ChunkSize,
			Logger:    logging.GetDefault(),
		})
		return engine.WipeDevice(args[0])
	},
}

func init() {
	deviceCmd.Flags().BoolVar(&deviceYes, "yes", false, "confirm destruction of all device content")
}
