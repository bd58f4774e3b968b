// Package errors provides the structured error type shared by every layer of progression-api.
//
// Errors carry a Code, a caller-facing Message, an optional Cause, and free-form metadata:
//
//	err := errors.InvalidArgumentf("progress %d is outside [0, 100]", p).
//	    WithMeta("achievement_id", id)
//
// Repositories return NotFound / InvalidArgument and wrap storage failures; orchestrators wrap
// with business context via Wrap, which preserves the original Code; handlers convert to gRPC
// status with ToGRPCError.
//
// Field level validation is accumulated with a ValidationBuilder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("id", a.ID, vb)
//	errors.ValidateRange("progress", int(a.Progress), 0, 100, vb)
//	return vb.Build()
package errors
