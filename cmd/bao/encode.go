package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/baoverify/bao/bao"
)

var (
	encodeOutboard bool
	encodeOutput   string
)

var encodeCmd = &cobra.Command{
	Use:   "encode [input]",
	Short: "encode input (or stdin) and print its bao root digest to stderr",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		in, err := openInput(path)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer closeIfNotStd(in)

		content, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		encoded, err := bao.Encode(content, encodeOutboard)
		if err != nil {
			return err
		}

		out, err := openOutput(encodeOutput)
		if err != nil {
			return fmt.Errorf("opening output: %w", err)
		}
		defer closeIfNotStd(out)

		if _, err := out.Write(encoded); err != nil {
			return fmt.Errorf("writing encoded output: %w", err)
		}

		digest, err := bao.Hash(bytes.NewReader(content))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), digest.String())
		return nil
	},
}

func init() {
	encodeCmd.Flags().BoolVar(&encodeOutboard, "outboard", false, "produce an outboard encoding (tree only, no content bytes)")
	encodeCmd.Flags().StringVarP(&encodeOutput, "output", "o", "-", "output path, or - for stdout")
}
