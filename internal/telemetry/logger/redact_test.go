package logger

import (
	"errors"
	"testing"

	"github.com/yndnr/flowlog/pkg/redact"
)

func TestScopeOf(t *testing.T) {
	tests := []struct {
		name string
		meta map[string]any
		want redact.Scope
	}{
		{"both set", map[string]any{FlowKey: "SRS", StateKey: "PINValidation"}, redact.Scope{Flow: "SRS", State: "PINValidation"}},
		{"missing", map[string]any{}, redact.Scope{}},
		{"non-string ignored", map[string]any{FlowKey: 7, StateKey: "S"}, redact.Scope{State: "S"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scopeOf(tt.meta); got != tt.want {
				t.Errorf("scopeOf() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEnumerateError(t *testing.T) {
	msg, stack := enumerateError("plain", 0)
	if msg != "plain" || stack != "" {
		t.Errorf("enumerateError(string) = %v, %q", msg, stack)
	}

	var nilErr error
	if msg, stack := enumerateError(nilErr, 0); msg != nil || stack != "" {
		t.Errorf("enumerateError(nil) = %v, %q", msg, stack)
	}

	msg, stack = enumerateError(errors.New("boom"), 0)
	if msg != "boom" {
		t.Errorf("message = %v, want boom", msg)
	}
	if stack == "" {
		t.Error("stack should be captured for errors")
	}
}

func TestRedactMessage_Count(t *testing.T) {
	policy := (&redact.Policy{}).AddScoped("SRS", "PINValidation", "Digit", "Account")
	meta := map[string]any{FlowKey: "SRS", StateKey: "PINValidation"}

	out, n := redactMessage(map[string]any{"Digit": "1", "Account": "2", "Other": "3"}, meta, policy)
	if n != 2 {
		t.Errorf("masked = %d, want 2", n)
	}
	if m := out.(map[string]any); m["Other"] != "3" || m["Digit"] != redact.Mask {
		t.Errorf("redactMessage() = %v", out)
	}
}
