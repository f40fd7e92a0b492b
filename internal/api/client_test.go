// ABOUTME: Tests for the CollabForm API client
// ABOUTME: Uses httptest to mock backend responses

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("expected path /api/auth/login, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json content type, got %s", ct)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("expected X-Request-Id header")
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Username != "alice" {
			t.Errorf("expected username alice, got %s", req.Username)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AuthResponse{
			Token:     "tok-123",
			User:      &User{ID: 1, Username: "alice"},
			ExpiresIn: 86400000,
		})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	auth, err := c.Login(context.Background(), LoginRequest{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.Token != "tok-123" {
		t.Errorf("expected token tok-123, got %s", auth.Token)
	}
	if auth.User == nil || auth.User.Username != "alice" {
		t.Errorf("expected user alice, got %+v", auth.User)
	}
}

func TestLogin_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(ErrorResponse{Message: "Invalid username or password"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	_, err := c.Login(context.Background(), LoginRequest{Username: "alice", Password: "wrong"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "Invalid username or password" {
		t.Errorf("expected backend message verbatim, got %q", err.Error())
	}
}

func TestLogin_ErrorWithoutEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	_, err := c.Login(context.Background(), LoginRequest{Username: "alice", Password: "pw"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "backend returned status 502" {
		t.Errorf("expected status fallback message, got %q", err.Error())
	}
}

func TestMyForms_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/forms/my-forms" {
			t.Errorf("expected path /api/forms/my-forms, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok-abc" {
			t.Errorf("expected bearer token, got %q", auth)
		}
		json.NewEncoder(w).Encode([]Form{
			{ID: 1, Title: "Survey", Active: true},
			{ID: 2, Title: "Feedback"},
		})
	}))
	defer server.Close()

	c := New(server.URL, func() string { return "tok-abc" })
	forms, err := c.MyForms(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forms) != 2 {
		t.Fatalf("expected 2 forms, got %d", len(forms))
	}
	if forms[0].Title != "Survey" {
		t.Errorf("expected Survey, got %s", forms[0].Title)
	}
}

func TestMyForms_NoAuthHeaderWhenAnonymous(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("expected no auth header, got %q", auth)
		}
		json.NewEncoder(w).Encode([]Form{})
	}))
	defer server.Close()

	c := New(server.URL, func() string { return "" })
	if _, err := c.MyForms(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetForm_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/forms/42" {
			t.Errorf("expected path /api/forms/42, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Form{
			ID:    42,
			Title: "Event RSVP",
			Fields: []Field{
				{ID: 1, FieldName: "Name", FieldType: FieldText, Required: true, DisplayOrder: 0},
				{ID: 2, FieldName: "Meal", FieldType: FieldDropdown, FieldOptions: `["Veg","Meat"]`, DisplayOrder: 1},
			},
		})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	form, err := c.GetForm(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.ID != 42 {
		t.Errorf("expected id 42, got %d", form.ID)
	}
	if len(form.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(form.Fields))
	}
	opts := form.Fields[1].Options()
	if len(opts) != 2 || opts[0] != "Veg" {
		t.Errorf("expected decoded options, got %v", opts)
	}
}

func TestUpdateForm_UsesPut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/api/forms/7" {
			t.Errorf("expected path /api/forms/7, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Form{ID: 7, Title: "Updated"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	form, err := c.UpdateForm(context.Background(), 7, &FormSaveRequest{Title: "Updated"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.Title != "Updated" {
		t.Errorf("expected Updated, got %s", form.Title)
	}
}

func TestDeleteForm_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	if err := c.DeleteForm(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestShareForm_BodyUsesRecipientEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/forms/5/share" {
			t.Errorf("expected path /api/forms/5/share, got %s", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["recipientEmail"] != "bob@example.com" {
			t.Errorf("expected recipientEmail key, got %v", body)
		}
		json.NewEncoder(w).Encode(ShareReceipt{FormID: 5, Success: true})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	receipt, err := c.ShareForm(context.Background(), 5, "bob@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !receipt.Success {
		t.Error("expected success receipt")
	}
}

func TestSubmitResponses_BodyShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body SubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Responses["1"] != "hello" {
			t.Errorf("expected responses keyed by field id, got %v", body.Responses)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	err := c.SubmitResponses(context.Background(), 9, map[string]any{"1": "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_ConnectionError(t *testing.T) {
	c := New("http://localhost:1", nil)
	_, err := c.MyForms(context.Background())
	if err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode([]Form{})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.MyForms(ctx)
	if err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}
