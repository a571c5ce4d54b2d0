// Command cryptoflip exposes the cryptoflip toolkit's key derivation,
// one-shot blob/file encryption, and flip-protocol operations from the
// shell.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = ""
	buildTime = "unknown"
	gitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cryptoflip",
	Short: "cryptoflip - streaming AES-256-GCM toolkit and flip protocol CLI",
	Long: `cryptoflip provides key derivation, streaming/one-shot AES-256-GCM
encryption, in-place file encryption, and the three-channel flip
transmission protocol from the command line.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		v := version
		if v == "" {
			v = "dev"
		}
		fmt.Printf("cryptoflip version %s\n", v)
		if buildTime != "unknown" {
			fmt.Printf("Built: %s\n", buildTime)
		}
		if gitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", gitCommit)
		}
	},
}
