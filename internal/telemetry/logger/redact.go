package logger

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/yndnr/flowlog/pkg/redact"
)

// scopeOf reads the redaction scope from entry metadata. Non-string values
// are ignored.
func scopeOf(meta map[string]any) redact.Scope {
	flow, _ := meta[FlowKey].(string)
	state, _ := meta[StateKey].(string)
	return redact.Scope{Flow: flow, State: state}
}

// enumerateError replaces an error message by its text and returns the stack
// of the logging call. Other messages are returned unchanged.
func enumerateError(message any, skip int) (any, string) {
	err, ok := message.(error)
	if !ok || err == nil {
		return message, ""
	}
	return err.Error(), captureStack(skip + 1)
}

// redactMessage masks message according to policy and reports how many
// fields were replaced.
func redactMessage(message any, meta map[string]any, policy *redact.Policy) (any, int) {
	return redact.RedactCount(message, scopeOf(meta), policy)
}

// captureStack formats the call stack, skipping skip frames above the
// caller of captureStack.
func captureStack(skip int) string {
	var buf strings.Builder
	pcs := make([]uintptr, 16)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		fmt.Fprintf(&buf, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return buf.String()
}
