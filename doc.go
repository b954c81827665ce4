// Package swfkit reads and writes vector-graphics movies in the SWF
// container layout.
//
// A movie is an 8-byte prefix (signature, version, file length), a body
// header (frame size, frame rate, frame count) and an ordered sequence of
// length-prefixed records ending with an End record. The records live in
// package tag; this package owns the container around them.
//
// # Quick Start
//
// Reading a movie:
//
//	movie, err := swfkit.Open("intro.swf")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, t := range movie.Tags() {
//		fmt.Println(t.Name())
//	}
//
// Building one:
//
//	movie := swfkit.NewMovie()
//	movie.SetFrameSize(swfkit.Pixels(550, 400))
//	movie.SetFrameRate(24)
//
//	export, err := tag.NewExport(tag.NameEntry{ID: movie.NewIdentifier(), Name: "hero"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	movie.Add(export, &tag.ShowFrame{})
//	err = movie.SaveAs("hero.swf", swfkit.WithValidation())
//
// # Body Encodings
//
//   - FWS: uncompressed
//   - CWS: zlib-compressed body
//   - ZWS: LZMA-compressed body, detected but not supported
//
// # Encoding
//
// Writing is two passes over the records in insertion order. The first
// measures every record so the header can carry the total length, the
// second writes them. A record that changes size between the passes fails
// with *ConsistencyError and the output must be discarded.
//
// # Error Handling
//
// Decoding distinguishes fatal errors from warnings:
//
//   - Fatal errors stop decoding: reads past the data (*UnderflowError),
//     records that do not use their declared length (*CorruptedFileError),
//     unknown signatures (*UnsupportedFormatError)
//   - Warnings describe data that decodes but is unusual: records kept as
//     raw bytes, a missing End record, header fields that disagree with
//     the body
//
// Use errors.Is with ErrUnderflow, ErrCorrupted and ErrConsistency to
// classify errors. Framing mismatches are programming errors and panic
// with *FramingError.
package swfkit
