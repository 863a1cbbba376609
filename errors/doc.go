// Package errors provides structured error types for the recoder library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Kind set is closed and flat: buffer_too_small,
// illegal_sequence, incomplete_sequence, nil_input, unknown_encoding, closed
// and the catch-all unknown. The Error type includes rich context: the
// encoding pair, the input offset where conversion stopped, and a cause
// chain.
//
// Classify maps the codec's raw signals onto the Kind set; it is total, so
// every signal lands on exactly one Kind. FromSignal builds a full Error
// from a raw signal plus conversion context.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConvert, errors.KindIllegalSequence).
//		From("SJIS").
//		To("UTF-8").
//		Offset(42).
//		Detail("invalid lead byte 0xFF").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownEncoding("NOT-A-REAL-ENCODING")
//	err := errors.IncompleteSequence(errors.PhaseConvert, "SJIS", "UTF-8", 10, nil)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
