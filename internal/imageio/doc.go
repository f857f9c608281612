// Package imageio converts image files to and from stego.PixelBuffer.
//
// Decoding accepts PNG, BMP, GIF and JPEG. Encoding only produces lossless
// containers (PNG and BMP) because any lossy recompression rewrites the
// least significant bits that carry the watermark.
//
// Samples are exchanged as non-premultiplied RGBA so that embedding into a
// translucent pixel does not lose bits to premultiplication.
package imageio
