package main

import (
	"github.com/spf13/cobra"

	"github.com/RafRunner/shh/app/runner"
)

func newCapacityCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "capacity <image> [payload_name]",
		Short: "Show how much data an image can hide",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 2 {
				name = args[1]
			}

			res, err := runner.NewRunner(a.cfg, a.stats).Capacity(args[0], name)
			if err != nil {
				return err
			}

			info(cmd, "%dx%d image, %d carrier bytes, %d hidden bytes in total", res.Width, res.Height, res.CarrierBytes, res.Windows)
			if !res.Fits {
				info(cmd, "Too small to hold any payload under that name")
				return nil
			}
			success(cmd, "Largest payload: %d bytes", res.MaxPayload)
			return nil
		},
	}
}
