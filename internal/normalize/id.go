package normalize

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

const idDelimiter = "-"

// StableID derives a deterministic UUID-shaped identifier from the posting's
// identifying fields. The feed supplies no IDs, so the same posting must hash
// to the same value on every fetch. The hash is 32-bit: collisions are
// possible and tolerated.
//
// The key is hashed per UTF-16 code unit with h = h*31 + c, wrapping at
// signed 32 bits, so IDs match those produced by the mobile client.
func StableID(title, company, location, posted string) string {
	key := strings.Join([]string{title, company, location, posted}, idDelimiter)

	var h int32
	for _, c := range utf16.Encode([]rune(key)) {
		h = h*31 + int32(c)
	}

	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	hex := strings.Repeat(fmt.Sprintf("%08x", abs), 4)
	return hex[0:8] + "-" + hex[8:12] + "-" + hex[12:16] + "-" + hex[16:20] + "-" + hex[20:32]
}
