// Command bao is the command-line front end for the bao verified-streaming
// tree hash: hash, encode, decode, slice and decode-slice subcommands
// mirror the reference bao.py tool's stdin/file handling, and serve runs
// the HTTP blob store.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/baoverify/bao/version"
)

var showVersion bool

// rootCmd is the main command for the bao binary.
var rootCmd = &cobra.Command{
	Use:   "bao",
	Short: "bao verified-streaming tree hash",
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			version.PrintVersion()
			return
		}
		cmd.Usage() //nolint:errcheck
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show the version and exit")
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(sliceCmd)
	rootCmd.AddCommand(decodeSliceCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openInput opens path for reading, or returns os.Stdin when path is "-" or
// empty, mirroring the reference implementation's open_input helper.
func openInput(path string) (*os.File, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

// openOutput opens path for writing, truncating it, or returns os.Stdout
// when path is "-" or empty, mirroring the reference implementation's
// open_output helper.
func openOutput(path string) (*os.File, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func closeIfNotStd(f *os.File) {
	if f != os.Stdin && f != os.Stdout {
		f.Close()
	}
}
