// Package stego hides a text payload in the least significant bits of an
// RGBA pixel buffer and recovers it again.
//
// The package is the pure core of vaultmark: it never decodes or encodes
// image files and never touches the filesystem. Callers decode an image into
// a PixelBuffer, call Embed or Extract, and re-encode the buffer themselves.
// Re-encoding must be lossless (PNG, BMP). Lossy recompression rewrites the
// low bits and silently destroys the payload.
//
// # Wire Format
//
// Bits are written MSB first into the R, G and B samples of every pixel, in
// row-major order. Alpha samples are never read or written.
//
//	magic   16 bits   0x564D ("VM")
//	length  16 bits   payload length in UTF-16 code units
//	body    16 bits per code unit
//
// The magic prefix lowers the chance of reading a structure out of an image
// that was never watermarked. It does not eliminate it: random low bits
// match the magic roughly once in 65536 images.
//
// # Obfuscation
//
// An optional key is applied as a repeating XOR keystream over the code
// units. This is obfuscation, not encryption. Extracting with the wrong key
// returns unreadable text and no error. Use package secrets to seal the
// payload first when confidentiality matters.
package stego
