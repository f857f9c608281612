package stego

import "unicode/utf16"

// UnitBits is the number of bits used for every UTF-16 code unit.
const UnitBits = 16

// Bits is an ordered bit sequence, one 0 or 1 per element.
type Bits []uint8

// TextToBits converts text to its UTF-16 code units and returns their bits,
// most significant bit first.
func TextToBits(text string) Bits {
	return UnitsToBits(utf16.Encode([]rune(text)))
}

// UnitLen returns the number of UTF-16 code units in text.
func UnitLen(text string) int {
	n := 0
	for _, r := range text {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}

// BitsToText is the inverse of TextToBits. A trailing partial code unit is
// dropped, so callers must pass exactly the bits that were written.
func BitsToText(bits Bits) string {
	return string(utf16.Decode(BitsToUnits(bits)))
}

// UnitsToBits serializes code units MSB first.
func UnitsToBits(units []uint16) Bits {
	bits := make(Bits, 0, len(units)*UnitBits)
	for _, u := range units {
		bits = appendUint16(bits, u)
	}
	return bits
}

// BitsToUnits groups bits into 16-bit code units.
func BitsToUnits(bits Bits) []uint16 {
	units := make([]uint16, 0, len(bits)/UnitBits)
	for i := 0; i+UnitBits <= len(bits); i += UnitBits {
		units = append(units, readUint16(bits[i:i+UnitBits]))
	}
	return units
}

func appendUint16(bits Bits, v uint16) Bits {
	for shift := UnitBits - 1; shift >= 0; shift-- {
		bits = append(bits, uint8(v>>uint(shift))&1)
	}
	return bits
}

func readUint16(bits Bits) uint16 {
	var v uint16
	for _, b := range bits {
		v = v<<1 | uint16(b&1)
	}
	return v
}
