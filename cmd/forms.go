// ABOUTME: Forms commands for list/get/delete/share/submit workflows
// ABOUTME: Scriptable counterparts of the TUI form screens

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/collabform/collabform-cli/internal/api"
	"github.com/collabform/collabform-cli/internal/forms"
)

var (
	listShared    bool
	deleteConfirm bool
	submitAnswers []string
)

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "Manage forms and responses",
}

var formsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your forms or forms shared with you",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runFormsList(ctx, os.Stdout, listShared)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var formsGetCmd = &cobra.Command{
	Use:   "get <form-id>",
	Short: "Show one form with its fields",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runFormsGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var formsDeleteCmd = &cobra.Command{
	Use:   "delete <form-id>",
	Short: "Delete a form",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if !deleteConfirm {
			confirmed := false
			form := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title("Delete this form? This action cannot be undone.").
					Value(&confirmed),
			)).WithTheme(huh.ThemeBase())
			if err := form.Run(); err != nil || !confirmed {
				fmt.Fprintln(os.Stdout, "Aborted")
				return
			}
		}

		exitCode := runFormsDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var formsShareCmd = &cobra.Command{
	Use:   "share <form-id> <email>",
	Short: "Share a form with another user by email",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runFormsShare(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var formsSubmitCmd = &cobra.Command{
	Use:   "submit <form-id>",
	Short: "Submit responses to a form",
	Long: `Submit responses to a form.

Answers are passed as repeated --answer flags of the form fieldID=value.
Repeating the same fieldID builds a multi-value answer for CHECKBOX fields.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runFormsSubmit(ctx, os.Stdout, args[0], submitAnswers)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	formsListCmd.Flags().BoolVar(&listShared, "shared", false, "List forms shared with you instead of your own")
	formsDeleteCmd.Flags().BoolVar(&deleteConfirm, "yes", false, "Skip the confirmation prompt")
	formsSubmitCmd.Flags().StringArrayVar(&submitAnswers, "answer", nil, "Field answer as fieldID=value (repeatable)")

	formsCmd.AddCommand(formsListCmd)
	formsCmd.AddCommand(formsGetCmd)
	formsCmd.AddCommand(formsDeleteCmd)
	formsCmd.AddCommand(formsShareCmd)
	formsCmd.AddCommand(formsSubmitCmd)
	rootCmd.AddCommand(formsCmd)
}

// runFormsList fetches and prints a form list, returning an exit code
func runFormsList(ctx context.Context, w io.Writer, shared bool) int {
	_, client := newSession()

	var (
		list []api.Form
		err  error
	)
	if shared {
		list, err = client.SharedForms(ctx)
	} else {
		list, err = client.MyForms(ctx)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(list, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatFormsHuman(list))
	}
	return 0
}

// formatFormsHuman renders a form list as one line per form
func formatFormsHuman(list []api.Form) string {
	if len(list) == 0 {
		return "No forms found."
	}

	var sb strings.Builder
	for i, f := range list {
		status := "inactive"
		if f.Active {
			status = "active"
		}
		fmt.Fprintf(&sb, "#%d  %s  [%s]", f.ID, f.Title, status)
		if f.Description != "" {
			fmt.Fprintf(&sb, "\n    %s", f.Description)
		}
		if i < len(list)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// runFormsGet fetches one form and prints it with fields
func runFormsGet(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid form id %q\n", idArg)
		return 1
	}

	_, client := newSession()
	form, err := client.GetForm(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(form, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatFormHuman(form))
	}
	return 0
}

// formatFormHuman renders a single form with its field list
func formatFormHuman(form *api.Form) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d  %s\n", form.ID, form.Title)
	if form.Description != "" {
		fmt.Fprintf(&sb, "%s\n", form.Description)
	}
	for _, f := range form.Fields {
		req := ""
		if f.Required {
			req = " (required)"
		}
		fmt.Fprintf(&sb, "  [%d] %s  %s%s", f.ID, f.FieldName, f.FieldType, req)
		if opts := f.Options(); len(opts) > 0 {
			fmt.Fprintf(&sb, "  options: %s", strings.Join(opts, ", "))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// runFormsDelete deletes a form, returning an exit code
func runFormsDelete(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid form id %q\n", idArg)
		return 1
	}

	_, client := newSession()
	if err := client.DeleteForm(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintln(w, "Form deleted")
	return 0
}

// runFormsShare grants access by recipient email
func runFormsShare(ctx context.Context, w io.Writer, idArg, email string) int {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid form id %q\n", idArg)
		return 1
	}

	_, client := newSession()
	if _, err := client.ShareForm(ctx, id, email); err != nil {
		// User-not-found and already-shared read the same to the caller.
		fmt.Fprintln(w, "Error: failed to share form")
		return 2
	}

	fmt.Fprintln(w, "Form shared successfully")
	return 0
}

// runFormsSubmit validates required fields locally, then submits
func runFormsSubmit(ctx context.Context, w io.Writer, idArg string, answerFlags []string) int {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid form id %q\n", idArg)
		return 1
	}

	raw, err := parseAnswerFlags(answerFlags)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	_, client := newSession()
	form, err := client.GetForm(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	answers := shapeAnswers(form.Fields, raw)
	if missing := forms.Missing(form.Fields, answers); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = f.FieldName
		}
		fmt.Fprintf(w, "Error: missing required fields: %s\n", strings.Join(names, ", "))
		return 1
	}

	if err := client.SubmitResponses(ctx, id, forms.Payload(answers)); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintln(w, "Form submitted successfully")
	return 0
}

// parseAnswerFlags parses repeated fieldID=value flags, grouping
// repeated ids into multi-value answers.
func parseAnswerFlags(flags []string) (map[int64][]string, error) {
	out := make(map[int64][]string)
	for _, flag := range flags {
		idStr, value, ok := strings.Cut(flag, "=")
		if !ok {
			return nil, fmt.Errorf("invalid answer %q, expected fieldID=value", flag)
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid field id in answer %q", flag)
		}
		out[id] = append(out[id], value)
	}
	return out, nil
}

// shapeAnswers converts raw flag values into per-type answer values:
// multi-value for CHECKBOX, single scalar otherwise. Answers for
// unknown field ids are dropped, matching what a rendered form would
// collect.
func shapeAnswers(fields []api.Field, raw map[int64][]string) map[int64]any {
	answers := make(map[int64]any, len(raw))
	for _, f := range fields {
		values, ok := raw[f.ID]
		if !ok {
			continue
		}
		if f.FieldType == api.FieldCheckbox {
			answers[f.ID] = values
		} else if len(values) > 0 {
			answers[f.ID] = values[len(values)-1]
		}
	}
	return answers
}
