// Package recoder converts byte streams between named character encodings.
//
// The package wraps a transform-based conversion engine in an iconv-style
// session API: open a session bound to a (from, to) encoding pair, drive it
// incrementally over caller-supplied buffers of any size, and get every
// failure classified into a small closed taxonomy.
//
// # Architecture Overview
//
// The library is organized into three packages with distinct
// responsibilities:
//
//	recoder/             Root package: sessions, one-shot converters, scalar decoder
//	├── engine/          Encoding registry and the bounded-step codec pipeline
//	└── errors/          Structured error taxonomy for conversion failures
//
// # Quick Start
//
// Convert a byte buffer in one call:
//
//	out, lossy, err := recoder.Convert("Shift_JIS", "UTF-8", raw)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s (%d lossy substitutions)\n", out, lossy)
//
// Or decode straight to text:
//
//	text, err := recoder.DecodeBytes(raw, "EUC-JP")
//
// # Streaming Conversion
//
// A Session carries converter state, including the shift state of
// encodings such as ISO-2022-JP, across calls:
//
//	s, err := recoder.NewSession("SJIS", "UTF-8")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	in := recoder.NewCursor(raw)
//	out, _, err := s.Convert(nil, in, recoder.Unbounded)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err = s.Flush(out)
//
// Bounded calls cap the output produced per call. When the cap fills, the
// call fails with a buffer_too_small error, the cursor stays advanced, and
// the next call resumes where the failed one stopped, so no converted
// bytes are ever lost to an error.
//
// # Error Taxonomy
//
// Every failure maps to exactly one errors.Kind: illegal_sequence for
// bytes that are invalid in the source encoding, incomplete_sequence for
// input ending mid-sequence, buffer_too_small for exhausted output space,
// nil_input and unknown_encoding for precondition violations, and unknown
// as the catch-all. See the errors package.
//
// # Thread Safety
//
// A Session is NOT safe for concurrent use; give each goroutine its own.
// Independent sessions are fully independent. Encoding lookups and the
// catalog cache are safe for concurrent use.
package recoder
