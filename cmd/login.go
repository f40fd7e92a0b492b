// ABOUTME: Login command exchanging credentials for a stored token
// ABOUTME: Prompts interactively when credentials are not passed as flags

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the CollabForm backend",
	Long:  `Exchange your credentials for a session token stored under the config directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if loginUsername == "" || loginPassword == "" {
			if err := promptCredentials(&loginUsername, &loginPassword); err != nil {
				return err
			}
		}

		cmd.SilenceUsage = true
		exitCode := runLogin(ctx, os.Stdout, loginUsername, loginPassword)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginUsername, "username", "", "Username")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prefer the interactive prompt)")
	rootCmd.AddCommand(loginCmd)
}

// promptCredentials collects username and password interactively
func promptCredentials(username, password *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password),
		),
	).WithTheme(huh.ThemeBase())
	return form.Run()
}

// runLogin executes the login flow and returns an exit code
func runLogin(ctx context.Context, w io.Writer, username, password string) int {
	sess, _ := newSession()

	if err := sess.Login(ctx, username, password); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if user := sess.CurrentUser(); user != nil && user.Subject != "" {
		fmt.Fprintf(w, "Logged in as %s\n", user.Subject)
	} else {
		fmt.Fprintln(w, "Logged in")
	}
	return 0
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the stored token",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the stored token and returns an exit code
func runLogout(w io.Writer) int {
	sess, _ := newSession()
	if err := sess.Logout(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(w, "Logged out")
	return 0
}
