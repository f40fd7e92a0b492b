// ABOUTME: Whoami command showing the identity derived from the token
// ABOUTME: An expired token terminates the session and reports anonymous

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/collabform/collabform-cli/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently logged-in user",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runWhoami(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami prints the current identity and returns an exit code
func runWhoami(w io.Writer) int {
	sess, _ := newSession()

	user := sess.CurrentUser()
	if user == nil {
		fmt.Fprintln(w, "Not logged in")
		return 1
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(user))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(user))
	}
	return 0
}

// formatWhoamiHuman formats the identity for human readability
func formatWhoamiHuman(user *session.User) string {
	out := fmt.Sprintf("Logged in as: %s", user.Subject)
	if !user.ExpiresAt.IsZero() {
		out += fmt.Sprintf("\nToken expires: %s", user.ExpiresAt.Format(time.RFC3339))
	}
	return out
}

// formatWhoamiJSON formats the identity as JSON
func formatWhoamiJSON(user *session.User) string {
	output := map[string]any{
		"username": user.Subject,
	}
	if !user.ExpiresAt.IsZero() {
		output["token_expires"] = user.ExpiresAt.Format(time.RFC3339)
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
