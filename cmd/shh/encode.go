package main

import (
	"github.com/spf13/cobra"

	"github.com/RafRunner/shh/app/runner"
)

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "encode <target_image> <payload> [output]",
		Aliases: []string{"e"},
		Short:   "Encode payload in image",
		Long: `Encode payload in image.

payload is the path of a file to hide; when it does not name a readable file
the argument itself is hidden as text. The result is always saved in a
lossless format: ".png" is appended unless output ends in .png, .bmp or .tiff.
output defaults to "encoded.png".`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var output string
			if len(args) == 3 {
				output = args[2]
			}

			res, err := runner.NewRunner(a.cfg, a.stats).Encode(args[0], args[1], output)
			if err != nil {
				return err
			}

			success(cmd, "Encoded image saved to '%s'", res.OutputPath)
			return nil
		},
	}
}
