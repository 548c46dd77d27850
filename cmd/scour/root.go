package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scour",
	Short: "Securely erase files and directories",
	Long: `Scour overwrites file content with the pattern passes of a named
sanitization standard (DoD 5220.22-M, Gutmann, VSITR and others)
before unlinking, so the bytes are gone before the name is.

Main features:
- Chunked overwriting of files of any size
- A catalog of military and industrial wipe standards
- Recursive tree sanitization with a two-phase directory protocol
- Rename, truncate and timestamp stripping before unlink (secure)
- Raw block device wiping (GOST R50739-95)`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(wipeCmd)
	rootCmd.AddCommand(standardsCmd)
	rootCmd.AddCommand(deviceCmd)
}
