package ucsi

import (
	"errors"
	"fmt"
)

var (
	// ErrShortResponse is returned for responses with fewer than 32 nibbles.
	ErrShortResponse = errors.New("short ucsi response")
	// ErrMalformedResponse is returned for responses that are not hex text.
	ErrMalformedResponse = errors.New("malformed ucsi response")
)

const (
	// ResponsePrefix is the "0x" in front of the response text.
	ResponsePrefix = 2
	// ResponseNibbles is the number of hex digits in a response.
	ResponseNibbles = 32
	// MinResponseSize is the smallest raw response that can be decoded.
	MinResponseSize = ResponsePrefix + ResponseNibbles
	// MaxResponseSize bounds a single read of the response file.
	MaxResponseSize = 64

	// ResponseWords is the number of 32-bit words in a response.
	ResponseWords = 4
	nibblesPerWord = 8
)

// Response is a decoded response kept one nibble per byte, most significant
// nibble first, the order the kernel prints it in.
type Response struct {
	nibbles [ResponseNibbles]uint8
}

// ParseResponse decodes the text read from the response file. Anything
// after the 32nd nibble, such as the trailing newline, is ignored.
func ParseResponse(raw []byte) (Response, error) {
	var r Response
	if len(raw) < MinResponseSize {
		return r, fmt.Errorf("%w: %d bytes", ErrShortResponse, len(raw))
	}

	for i, c := range raw[ResponsePrefix:MinResponseSize] {
		switch {
		case c >= '0' && c <= '9':
			r.nibbles[i] = c - '0'
		case c >= 'a' && c <= 'f':
			r.nibbles[i] = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			r.nibbles[i] = c - 'A' + 10
		default:
			return Response{}, fmt.Errorf("%w: byte %q at %d", ErrMalformedResponse, c, i+ResponsePrefix)
		}
	}
	return r, nil
}

// nibble returns the nibble at position i, counted from the most
// significant end.
func (r Response) nibble(i int) uint8 {
	if i < 0 || i >= ResponseNibbles {
		return 0
	}
	return r.nibbles[i]
}

// wordOffset is the first nibble of word i. Word 0 holds the least
// significant 32 bits and sits at the end of the text.
func wordOffset(i int) int {
	return (ResponseWords - 1 - i) * nibblesPerWord
}

// Word returns the 32-bit word i of the response, word 0 being the least
// significant.
func (r Response) Word(i int) uint32 {
	if i < 0 || i >= ResponseWords {
		return 0
	}
	var w uint32
	start := wordOffset(i)
	for j := 0; j < nibblesPerWord; j++ {
		w = w<<4 | uint32(r.nibble(start+j))
	}
	return w
}

// Words returns all four response words, least significant first.
func (r Response) Words() []uint32 {
	words := make([]uint32, ResponseWords)
	for i := range words {
		words[i] = r.Word(i)
	}
	return words
}

// FormatResponse renders words, least significant first, as the response
// file text.
func FormatResponse(words ...uint32) []byte {
	var w [ResponseWords]uint32
	copy(w[:], words)
	return []byte(fmt.Sprintf("0x%08x%08x%08x%08x\n", w[3], w[2], w[1], w[0]))
}
