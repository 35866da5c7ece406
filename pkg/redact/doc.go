// Package redact masks sensitive fields in log payloads before they are
// written.
//
// Masking is driven by field names, never by field values. A Policy names the
// fields to mask either globally or for a specific (flow, state) Scope:
//
//	global:
//	  ADDRESS1: redact
//	SRS:
//	  PINValidation:
//	    Digit: redact
//
// Redact walks the whole value. That covers nested objects and arrays, and
// strings that themselves hold serialized JSON, at any depth of encoding. A
// field whose name matches the policy has its value replaced by Mask, whatever
// the value's type. A string-encoded object that was rewritten is serialized
// back into a string so the payload keeps its shape.
//
// Redaction never fails the caller. Values that cannot be parsed or walked are
// returned as they were, and the input is never modified.
package redact
