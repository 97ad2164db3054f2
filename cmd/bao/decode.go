package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baoverify/bao/bao"
)

var (
	decodeRoot     string
	decodeOutput   string
	decodeOutboard string
)

var decodeCmd = &cobra.Command{
	Use:   "decode [input]",
	Short: "verify input (or stdin) against --root and write the plaintext",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := bao.ParseDigest(decodeRoot)
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

		contentStream := in
		if decodeOutboard != "" {
			tree := in
			content, err := openInput(decodeOutboard)
			if err != nil {
				return fmt.Errorf("opening outboard content: %w", err)
			}
			defer closeIfNotStd(content)

			out, err := openOutput(decodeOutput)
			if err != nil {
				return fmt.Errorf("opening output: %w", err)
			}
			defer closeIfNotStd(out)
			return bao.Decode(tree, content, out, root)
		}

		out, err := openOutput(decodeOutput)
		if err != nil {
			return fmt.Errorf("opening output: %w", err)
		}
		defer closeIfNotStd(out)

		return bao.Decode(contentStream, contentStream, out, root)
	},
}

func init() {
	decodeCmd.Flags().StringVar(&decodeRoot, "root", "", "expected root digest, as hex")
	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "-", "output path, or - for stdout")
	decodeCmd.Flags().StringVar(&decodeOutboard, "outboard-content", "", "path to the separate content stream, if input is an outboard tree")
	decodeCmd.MarkFlagRequired("root") //nolint:errcheck
}
