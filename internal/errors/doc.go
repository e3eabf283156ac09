// Package errors provides structured error handling for roll-api.
//
// This package provides:
//   - Structured errors with codes, messages, and metadata
//   - Error context preservation through wrapping
//   - Validation error helpers
//   - Type-safe error checking
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("roll history not found")
//	err := errors.InvalidArgumentf("unexpected %q at position %d", lit, pos)
//
// Adding metadata:
//
//	err := errors.InvalidArgument("unbalanced parentheses").
//	    WithMeta("expression", expr)
//
// Wrapping errors:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to get roll history")
//	}
//
// # Error Checking
//
// Type checking:
//
//	if errors.IsNotFound(err) {
//	    // Handle not found case
//	}
//
// Extracting information:
//
//	code := errors.GetCode(err)
//	message := errors.GetMessage(err)
//
// # Validation Errors
//
// Using the validation builder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Roller == nil {
//	    vb.RequiredField("Roller")
//	}
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Error Codes and the Engine Taxonomy
//
// The dice engine maps its caller-visible conditions onto codes:
//   - InvalidArgument: syntax errors, unbalanced parentheses, empty input
//   - ResourceExhausted: dice count or sides above the static caps
//   - NotFound: a @variable reference with no binding, missing history
//   - Internal: bugs (unhandled node kinds), wrapped unknown errors
//   - Unavailable: redis unreachable
//
// All engine errors are expected, recoverable, and surfaced to callers;
// none of them crash the process. The HTTP layer converts codes to
// status codes via Code.HTTPStatus.
package errors
