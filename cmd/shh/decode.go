package main

import (
	"github.com/spf13/cobra"

	"github.com/RafRunner/shh/app/runner"
)

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "decode <encoded_image> [output]",
		Aliases: []string{"d"},
		Short:   "Decode payload from an image",
		Long: `Decode payload from an image.

Without output the payload is written to its original file name in the
current directory. With output it is written to output plus the original
file extension.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var output string
			if len(args) == 2 {
				output = args[1]
			}

			res, err := runner.NewRunner(a.cfg, a.stats).Decode(args[0], output)
			if err != nil {
				return err
			}

			success(cmd, "Decoded payload saved to '%s'", res.OutputPath)
			if output != "" {
				info(cmd, "Original file name was '%s'", res.OriginalName)
			}
			return nil
		},
	}
}
