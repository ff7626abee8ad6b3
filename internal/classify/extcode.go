package classify

import "path/filepath"

// ExtensionCode is a 32-bit integer derived from a path's trailing
// extension, used as half of a ClassifyingKey to keep the key width small
// compared to storing the extension string itself. A file with no
// extension always codes to zero.
//
// Each extension byte is folded into a 6-bit slot: ASCII letters are
// forced lowercase first (bit 6 of the byte, 0x40, distinguishes letters
// from digits in the ASCII range this format is defined over), digits are
// masked to their low nibble. Two distinct extensions can collide under
// this scheme — that's accepted; size and partial hash disambiguate
// further down the pipeline.
type ExtensionCode uint32

// Hash computes the ExtensionCode for path's extension.
func Hash(path string) ExtensionCode {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0
	}
	// filepath.Ext includes the leading dot; skip it.
	ext = ext[1:]

	var result uint32
	for i := 0; i < len(ext); i++ {
		b := ext[i]
		if b&64 != 0 {
			// Letter: force lowercase (set bit 5) before packing.
			b |= 32
			result = result<<6 | uint32(b)
		} else {
			// Digit: low nibble is sufficient to distinguish 0-9.
			b &= 15
			result = result<<6 | uint32(b)
		}
	}
	return ExtensionCode(result)
}
