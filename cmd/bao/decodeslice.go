package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baoverify/bao/bao"
)

var (
	decodeSliceRoot   string
	decodeSliceStart  uint64
	decodeSliceLength uint64
	decodeSliceOutput string
)

var decodeSliceCmd = &cobra.Command{
	Use:   "decode-slice [input]",
	Short: "verify a slice produced by slice against --root and the same range",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := bao.ParseDigest(decodeSliceRoot)
		if err != nil {
			return fmt.Errorf("--root: %w", err)
		}

		var inPath string
		if len(args) == 1 {
			inPath = args[0]
		}
		in, err := openInput(inPath)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer closeIfNotStd(in)

		out, err := openOutput(decodeSliceOutput)
		if err != nil {
			return fmt.Errorf("opening output: %w", err)
		}
		defer closeIfNotStd(out)

		return bao.DecodeSlice(in, out, root, decodeSliceStart, decodeSliceLength)
	},
}

func init() {
	decodeSliceCmd.Flags().StringVar(&decodeSliceRoot, "root", "", "expected root digest, as hex")
	decodeSliceCmd.Flags().Uint64Var(&decodeSliceStart, "start", 0, "start offset used to produce the slice")
	decodeSliceCmd.Flags().Uint64Var(&decodeSliceLength, "len", 0, "length used to produce the slice")
	decodeSliceCmd.Flags().StringVarP(&decodeSliceOutput, "output", "o", "-", "output path, or - for stdout")
	decodeSliceCmd.MarkFlagRequired("root") //nolint:errcheck
}
