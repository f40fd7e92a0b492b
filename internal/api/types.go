// ABOUTME: Wire types for the CollabForm REST API
// ABOUTME: Mirrors the backend JSON shapes for forms, fields, and auth

package api

import "encoding/json"

// FieldType is the type tag of a form field.
type FieldType string

const (
	FieldText     FieldType = "TEXT"
	FieldTextarea FieldType = "TEXTAREA"
	FieldNumber   FieldType = "NUMBER"
	FieldDate     FieldType = "DATE"
	FieldDropdown FieldType = "DROPDOWN"
	FieldCheckbox FieldType = "CHECKBOX"
	FieldRadio    FieldType = "RADIO"
)

// HasOptions reports whether the type carries an option list.
func (t FieldType) HasOptions() bool {
	switch t {
	case FieldDropdown, FieldCheckbox, FieldRadio:
		return true
	}
	return false
}

// User is the non-sensitive user representation returned by the backend.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Field is a single form field descriptor.
// FieldOptions is a JSON-encoded string array; the backend stores it
// as an opaque string and only option-bearing types populate it.
type Field struct {
	ID           int64     `json:"id,omitempty"`
	FieldName    string    `json:"fieldName"`
	FieldType    FieldType `json:"fieldType"`
	FieldOptions string    `json:"fieldOptions,omitempty"`
	Required     bool      `json:"required"`
	DisplayOrder int       `json:"displayOrder"`
}

// Options decodes the FieldOptions payload.
// Returns nil for empty or malformed payloads.
func (f Field) Options() []string {
	if f.FieldOptions == "" {
		return nil
	}
	var opts []string
	if err := json.Unmarshal([]byte(f.FieldOptions), &opts); err != nil {
		return nil
	}
	return opts
}

// EncodeOptions encodes an option list into the backend's
// JSON-string representation. Empty lists encode to "".
func EncodeOptions(opts []string) string {
	if len(opts) == 0 {
		return ""
	}
	data, err := json.Marshal(opts)
	if err != nil {
		return ""
	}
	return string(data)
}

// Form is a form descriptor with its ordered field list.
type Form struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Active      bool    `json:"active"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
	Admin       *User   `json:"admin,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
}

// LoginRequest is the POST /api/auth/login body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the POST /api/auth/register body.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both auth endpoints.
// ExpiresIn is milliseconds until the token expires.
type AuthResponse struct {
	Token     string `json:"token"`
	User      *User  `json:"user,omitempty"`
	ExpiresIn int64  `json:"expiresIn,omitempty"`
}

// FormSaveRequest is the create/update body. The same shape serves
// POST /api/forms and PUT /api/forms/{id}; field order is preserved.
type FormSaveRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

// ShareRequest grants another user access by email.
type ShareRequest struct {
	RecipientEmail string `json:"recipientEmail"`
}

// ShareReceipt is the backend's acknowledgement of a share grant.
type ShareReceipt struct {
	FormID             int64  `json:"formId"`
	SharedWithUsername string `json:"sharedWithUsername,omitempty"`
	Message            string `json:"message,omitempty"`
	Success            bool   `json:"success"`
}

// SubmitRequest carries field responses keyed by field id.
// Values are strings, string arrays (CHECKBOX), or null (RADIO with
// no selection on an optional field).
type SubmitRequest struct {
	Responses map[string]any `json:"responses"`
}

// ErrorResponse is the backend's error envelope.
type ErrorResponse struct {
	Message string `json:"message"`
}
