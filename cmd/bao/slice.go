package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/baoverify/bao/bao"
)

var (
	sliceStart           uint64
	sliceLength          uint64
	sliceOutput          string
	sliceOutboardContent string
)

var sliceCmd = &cobra.Command{
	Use:   "slice [input]",
	Short: "extract a self-contained, unverified combined-encoding slice from a seekable encoded input",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var inPath string
		if len(args) == 1 {
			inPath = args[0]
		}
		in, err := openInput(inPath)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer closeIfNotStd(in)
		if in == os.Stdin {
			return fmt.Errorf("slice requires a seekable file input, not stdin")
		}

		out, err := openOutput(sliceOutput)
		if err != nil {
			return fmt.Errorf("opening output: %w", err)
		}
		defer closeIfNotStd(out)

		if sliceOutboardContent != "" {
			content, err := openInput(sliceOutboardContent)
			if err != nil {
				return fmt.Errorf("opening outboard content: %w", err)
			}
			defer closeIfNotStd(content)
			if content == os.Stdin {
				return fmt.Errorf("slice requires a seekable content input, not stdin")
			}
			return bao.Slice(in, content, out, sliceStart, sliceLength)
		}

		return bao.Slice(in, in, out, sliceStart, sliceLength)
	},
}

func init() {
	sliceCmd.Flags().Uint64Var(&sliceStart, "start", 0, "start offset of the requested content range")
	sliceCmd.Flags().Uint64Var(&sliceLength, "len", 0, "length of the requested content range")
	sliceCmd.Flags().StringVarP(&sliceOutput, "output", "o", "-", "output path, or - for stdout")
	sliceCmd.Flags().StringVar(&sliceOutboardContent, "outboard-content", "", "path to the separate content stream, if input is an outboard tree")
}
