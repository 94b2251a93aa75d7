package http

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"homeledger/internal/core"
)

// HTMXResponse assembles HX-Trigger events and a status code for
// fragment responses. Events accumulate into a single JSON header so
// the client receives them atomically.
type HTMXResponse struct {
	triggers map[string]any
	status   int
}

func NewHTMXResponse() *HTMXResponse {
	return &HTMXResponse{
		triggers: make(map[string]any),
		status:   http.StatusOK,
	}
}

func (b *HTMXResponse) WithStatus(status int) *HTMXResponse {
	b.status = status
	return b
}

// WithExpenseCreated announces a new record in the given month so the
// dashboard can refresh the affected overview.
func (b *HTMXResponse) WithExpenseCreated(ym core.YearMonth) *HTMXResponse {
	b.triggers["expense:created"] = map[string]int{"year": ym.Year, "month": ym.Month}
	return b
}

// WithExpenseDeleted announces a removed record in the given month.
func (b *HTMXResponse) WithExpenseDeleted(ym core.YearMonth) *HTMXResponse {
	b.triggers["expense:deleted"] = map[string]int{"year": ym.Year, "month": ym.Month}
	return b
}

// WithFormReset tells the entry form to clear its fields.
func (b *HTMXResponse) WithFormReset() *HTMXResponse {
	b.triggers["form:reset"] = map[string]any{}
	return b
}

// WithDialogClose tells the entry dialog to close.
func (b *HTMXResponse) WithDialogClose() *HTMXResponse {
	b.triggers["dialog:close"] = map[string]any{}
	return b
}

// WithNotification shows a transient toast on the client.
func (b *HTMXResponse) WithNotification(kind, message string) *HTMXResponse {
	b.triggers["show-notification"] = map[string]any{
		"type":     kind,
		"message":  message,
		"duration": 3000,
	}
	return b
}

// Write emits the accumulated triggers and status. Must be called once.
func (b *HTMXResponse) Write(w http.ResponseWriter, r *http.Request) {
	if len(b.triggers) > 0 {
		payload, err := json.Marshal(b.triggers)
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to marshal HX-Trigger payload", "error", err)
		} else {
			w.Header().Set("HX-Trigger", string(payload))
		}
	}
	w.WriteHeader(b.status)
}

// writeFormError renders an inline error fragment for the entry form.
// The message is what the caller wants the user to read, store errors
// included, so the dialog can stay open with the submitted values intact.
func writeFormError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<div class="form-error" role="alert">` + template.HTMLEscapeString(message) + `</div>`))
}
