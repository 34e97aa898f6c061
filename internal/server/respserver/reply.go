package respserver

import (
	"errors"
	"strconv"

	"github.com/yndnr/keyline-go/internal/core/domain"
)

// Fixed replies.
var (
	replyPong     = []byte("+PONG\r\n")
	replyOK       = []byte("+OK\r\n")
	replyNullBulk = []byte("$-1\r\n")
)

// simpleString frames s as +<s>\r\n.
func simpleString(s string) []byte {
	b := make([]byte, 0, len(s)+3)
	b = append(b, '+')
	b = append(b, s...)
	return append(b, '\r', '\n')
}

// bulk frames val as $<len>\r\n<val>\r\n.
func bulk(val []byte) []byte {
	if val == nil {
		return replyNullBulk
	}
	size := strconv.Itoa(len(val))
	b := make([]byte, 0, len(size)+len(val)+5)
	b = append(b, '$')
	b = append(b, size...)
	b = append(b, '\r', '\n')
	b = append(b, val...)
	return append(b, '\r', '\n')
}

// integer frames n as :<n>\r\n.
func integer(n int64) []byte {
	return []byte(":" + strconv.FormatInt(n, 10) + "\r\n")
}

// errorReply frames an error as -Error <message>\r\n.
// DomainErrors carry their code; other errors use their message as-is.
func errorReply(err error) []byte {
	var de *domain.DomainError
	msg := "Error "
	if errors.As(err, &de) {
		msg += de.Code + " " + de.Message
	} else {
		msg += err.Error()
	}
	return []byte("-" + msg + "\r\n")
}
