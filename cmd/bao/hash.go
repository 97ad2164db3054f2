package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baoverify/bao/bao"
)

var hashCmd = &cobra.Command{
	Use:   "hash [input]",
	Short: "print the bao root digest of input (or stdin)",
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

		digest, err := bao.Hash(in)
		if err != nil {
			return err
		}
		fmt.Println(digest.String())
		return nil
	},
}
