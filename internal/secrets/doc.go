// Package secrets seals watermark payloads with real authenticated encryption.
//
// The XOR key applied by package stego only obfuscates a payload. When the
// hidden text must stay confidential, seal it here first and embed the
// sealed text instead:
//
//	sealed, err := secrets.Seal("quarterly numbers", passphrase)
//	err = stego.Embed(buf, sealed, "")
//
// # Sealed Payload Format
//
// A sealed payload is plain ASCII so it can travel through the text codec:
//
//	vm1:<base64url(salt || nonce || box)>
//
//   - salt: 16 random bytes fed to Argon2id
//   - nonce: 24 random bytes for NaCl secretbox
//   - box: secretbox output (16-byte Poly1305 tag plus ciphertext)
//
// The 32-byte secretbox key is derived with Argon2id (time=3, memory=32 MiB,
// threads=4). Sealing the same text twice produces different output.
//
// # Failure Modes
//
// Unlike XOR deobfuscation, Open detects a wrong passphrase or a modified
// payload and returns ErrOpenFailed.
package secrets
