package respserver

import (
	"fmt"
	"unicode/utf8"

	"github.com/yndnr/keyline-go/internal/core/domain"
)

// SplitTokens converts one read of the transport buffer into an ordered
// sequence of string tokens, splitting wherever the two-byte terminator
// \r\n occurs within buf[0:n].
//
// A trailing segment not closed by the terminator is never emitted. Bytes
// between terminators must be valid UTF-8; anything else yields ErrDecode.
// A zero-length read produces an empty token sequence — the caller treats
// that as the peer closing the connection.
func SplitTokens(buf []byte, n int) ([]string, error) {
	if n < 0 || n > len(buf) {
		return nil, fmt.Errorf("respserver: invalid read length %d for buffer of %d", n, len(buf))
	}

	var tokens []string
	start := 0
	for i := 0; i+1 < n; i++ {
		if buf[i] != '\r' || buf[i+1] != '\n' {
			continue
		}
		seg := buf[start:i]
		if !utf8.Valid(seg) {
			return nil, domain.ErrDecode.WithDetails(fmt.Sprintf("token at offset %d", start))
		}
		tokens = append(tokens, string(seg))
		start = i + 2
		i++ // skip the '\n'
	}

	return tokens, nil
}
