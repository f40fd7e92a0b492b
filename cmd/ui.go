// ABOUTME: UI command launching the interactive TUI
// ABOUTME: Wires session, API client, and debug logging together

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/collabform/collabform-cli/internal/debuglog"
	"github.com/collabform/collabform-cli/internal/session"
	"github.com/collabform/collabform-cli/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive TUI",
	Long:  `Open the full-screen terminal UI: login, browse and edit your forms, fill and submit shared ones.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := debuglog.Init(session.DefaultConfigDir()); err != nil {
			// Logging is best-effort; the UI works without it.
			fmt.Fprintf(os.Stderr, "warning: debug log disabled: %v\n", err)
		}
		defer debuglog.Close()

		sess, client := newSession()
		if err := tui.Run(client, sess); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
