package stego

import "unicode/utf16"

// Obfuscate XORs every code unit with the key's code unit at the same
// position modulo the key length. An empty key returns an unchanged copy.
//
// The operation is its own inverse and offers no real confidentiality.
func Obfuscate(units []uint16, key string) []uint16 {
	out := make([]uint16, len(units))
	copy(out, units)

	keyUnits := utf16.Encode([]rune(key))
	if len(keyUnits) == 0 {
		return out
	}
	for i := range out {
		out[i] ^= keyUnits[i%len(keyUnits)]
	}
	return out
}

// Deobfuscate reverses Obfuscate.
func Deobfuscate(units []uint16, key string) []uint16 {
	return Obfuscate(units, key)
}
