// Package engine wraps the x/text codec machinery behind a bounded-step
// conversion primitive.
//
// A Handle binds a (from, to) encoding pair at Open time and exposes one
// operation, Step, which converts as much input as fits into a bounded
// output buffer while carrying shift state between calls. Failures surface
// as raw signals (transform.ErrShortDst, transform.ErrShortSrc,
// errors.ErrIllegalSequence, repertoire errors); the caller maps them onto
// the error taxonomy.
//
// Decoders in x/text replace bytes they cannot map with U+FFFD instead of
// failing, so the pipeline built here follows every decoder with a strict
// filter that converts those replacement runes into illegal-sequence
// failures. On the target side unsupported runes are substituted with the
// encoder's suggested replacement byte and counted rather than failed, which
// matches the usual lossy-transcoding contract.
//
// The package also owns the encoding registry: a static table of supported
// encodings with their alias groups, with the IANA index as a fallback
// resolver for labels outside the table.
package engine
