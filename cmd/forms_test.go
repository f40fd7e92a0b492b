// ABOUTME: Tests for forms command helpers and run functions
// ABOUTME: Uses httptest servers and in-memory writers

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/collabform/collabform-cli/internal/api"
)

func pointAtServer(t *testing.T, url string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	oldURL := apiURL
	apiURL = url
	t.Cleanup(func() { apiURL = oldURL })
}

func TestParseAnswerFlags(t *testing.T) {
	raw, err := parseAnswerFlags([]string{"1=Alice", "2=Red", "2=Blue"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw[1]) != 1 || raw[1][0] != "Alice" {
		t.Errorf("expected single value for field 1, got %v", raw[1])
	}
	if len(raw[2]) != 2 {
		t.Errorf("expected repeated flag to accumulate, got %v", raw[2])
	}
}

func TestParseAnswerFlags_ValueWithEquals(t *testing.T) {
	raw, err := parseAnswerFlags([]string{"3=a=b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw[3][0] != "a=b" {
		t.Errorf("expected value to keep extra equals, got %q", raw[3][0])
	}
}

func TestParseAnswerFlags_Invalid(t *testing.T) {
	if _, err := parseAnswerFlags([]string{"no-separator"}); err == nil {
		t.Error("expected error for missing separator")
	}
	if _, err := parseAnswerFlags([]string{"abc=value"}); err == nil {
		t.Error("expected error for non-numeric field id")
	}
}

func TestShapeAnswers(t *testing.T) {
	fields := []api.Field{
		{ID: 1, FieldType: api.FieldText},
		{ID: 2, FieldType: api.FieldCheckbox},
	}
	raw := map[int64][]string{
		1: {"first", "second"},
		2: {"Red", "Blue"},
		9: {"orphan"}, // unknown field id
	}

	answers := shapeAnswers(fields, raw)

	if answers[1] != "second" {
		t.Errorf("expected last value to win for scalar field, got %v", answers[1])
	}
	multi, ok := answers[2].([]string)
	if !ok || len(multi) != 2 {
		t.Errorf("expected multi-value for checkbox field, got %v", answers[2])
	}
	if _, ok := answers[9]; ok {
		t.Error("expected unknown field id to be dropped")
	}
}

func TestFormatFormsHuman(t *testing.T) {
	out := formatFormsHuman([]api.Form{
		{ID: 1, Title: "Survey", Active: true, Description: "Quarterly"},
		{ID: 2, Title: "RSVP"},
	})
	if !strings.Contains(out, "#1  Survey  [active]") {
		t.Errorf("expected active marker, got %q", out)
	}
	if !strings.Contains(out, "[inactive]") {
		t.Errorf("expected inactive marker, got %q", out)
	}
	if !strings.Contains(out, "Quarterly") {
		t.Errorf("expected description line, got %q", out)
	}
}

func TestFormatFormsHuman_Empty(t *testing.T) {
	if out := formatFormsHuman(nil); out != "No forms found." {
		t.Errorf("expected empty message, got %q", out)
	}
}

func TestFormatFormHuman(t *testing.T) {
	out := formatFormHuman(&api.Form{
		ID:    4,
		Title: "Lunch Order",
		Fields: []api.Field{
			{ID: 10, FieldName: "Name", FieldType: api.FieldText, Required: true},
			{ID: 11, FieldName: "Meal", FieldType: api.FieldDropdown, FieldOptions: `["Veg","Meat"]`},
		},
	})
	if !strings.Contains(out, "(required)") {
		t.Errorf("expected required marker, got %q", out)
	}
	if !strings.Contains(out, "options: Veg, Meat") {
		t.Errorf("expected options list, got %q", out)
	}
}

func TestRunFormsList_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/forms/my-forms" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]api.Form{{ID: 1, Title: "Survey", Active: true}})
	}))
	defer server.Close()
	pointAtServer(t, server.URL)

	var buf bytes.Buffer
	if code := runFormsList(context.Background(), &buf, false); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Survey") {
		t.Errorf("expected form in output, got %q", buf.String())
	}
}

func TestRunFormsList_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	pointAtServer(t, server.URL)

	var buf bytes.Buffer
	if code := runFormsList(context.Background(), &buf, false); code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
}

func TestRunFormsShare_GenericFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(api.ErrorResponse{Message: "User not found"})
	}))
	defer server.Close()
	pointAtServer(t, server.URL)

	var buf bytes.Buffer
	if code := runFormsShare(context.Background(), &buf, "5", "nobody@example.com"); code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	// Share failures never leak the backend's reason
	if !strings.Contains(buf.String(), "failed to share form") {
		t.Errorf("expected generic share error, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "User not found") {
		t.Errorf("backend detail leaked: %q", buf.String())
	}
}

func TestRunFormsSubmit_MissingRequiredBlocksNetwork(t *testing.T) {
	submitted := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/submit") {
			submitted = true
		}
		json.NewEncoder(w).Encode(api.Form{
			ID:    3,
			Title: "Survey",
			Fields: []api.Field{
				{ID: 1, FieldName: "Name", FieldType: api.FieldText, Required: true},
			},
		})
	}))
	defer server.Close()
	pointAtServer(t, server.URL)

	var buf bytes.Buffer
	code := runFormsSubmit(context.Background(), &buf, "3", nil)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "missing required fields: Name") {
		t.Errorf("expected missing-field names, got %q", buf.String())
	}
	if submitted {
		t.Error("submit endpoint was called despite missing required field")
	}
}

func TestRunFormsSubmit_Success(t *testing.T) {
	var body api.SubmitRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/submit") {
			json.NewDecoder(r.Body).Decode(&body)
			w.WriteHeader(http.StatusOK)
			return
		}
		json.NewEncoder(w).Encode(api.Form{
			ID:    3,
			Title: "Survey",
			Fields: []api.Field{
				{ID: 1, FieldName: "Name", FieldType: api.FieldText, Required: true},
				{ID: 2, FieldName: "Toppings", FieldType: api.FieldCheckbox, FieldOptions: `["A","B"]`},
			},
		})
	}))
	defer server.Close()
	pointAtServer(t, server.URL)

	var buf bytes.Buffer
	code := runFormsSubmit(context.Background(), &buf, "3", []string{"1=Alice", "2=A", "2=B"})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if body.Responses["1"] != "Alice" {
		t.Errorf("expected scalar answer, got %v", body.Responses["1"])
	}
	toppings, ok := body.Responses["2"].([]any)
	if !ok || len(toppings) != 2 {
		t.Errorf("expected multi-value answer, got %v", body.Responses["2"])
	}
}

func TestRunFormsDelete_InvalidID(t *testing.T) {
	pointAtServer(t, "http://unused")

	var buf bytes.Buffer
	if code := runFormsDelete(context.Background(), &buf, "abc"); code != 1 {
		t.Errorf("expected exit 1 for invalid id, got %d", code)
	}
}
