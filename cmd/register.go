// ABOUTME: Register command creating a new CollabForm account
// ABOUTME: Validates field presence and password confirmation locally

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
	registerUsername string
	registerEmail    string
	registerPassword string
	registerConfirm  string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long:  `Create a CollabForm account. Registration does not log you in; run 'collabform login' afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if registerUsername == "" || registerPassword == "" {
			if err := promptRegistration(); err != nil {
				return err
			}
		}

		cmd.SilenceUsage = true
		exitCode := runRegister(ctx, os.Stdout, registerUsername, registerEmail, registerPassword, registerConfirm)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerUsername, "username", "", "Username")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password")
	registerCmd.Flags().StringVar(&registerConfirm, "confirm-password", "", "Password confirmation")
	rootCmd.AddCommand(registerCmd)
}

// promptRegistration collects registration fields interactively
func promptRegistration() error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&registerUsername),
			huh.NewInput().
				Title("Email").
				Value(&registerEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&registerPassword),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&registerConfirm),
		),
	).WithTheme(huh.ThemeBase())
	return form.Run()
}

// runRegister executes registration and returns an exit code
func runRegister(ctx context.Context, w io.Writer, username, email, password, confirm string) int {
	sess, _ := newSession()

	if err := sess.Register(ctx, username, email, password, confirm); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(w, "Registration successful. Please login.")
	return 0
}
