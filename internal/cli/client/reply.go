package client

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// ReplyKind identifies the wire shape of a reply.
type ReplyKind int

// Reply kinds, one per reply marker.
const (
	KindString ReplyKind = iota
	KindInteger
	KindNull
	KindError
)

// Reply is one decoded server reply.
//
// Kind selects which field is meaningful: Str for simple strings and
// bulk values, Int for integers, Err for error replies.
type Reply struct {
	Kind ReplyKind
	Str  string
	Int  int64
	Null bool
	Err  error
}

// Text returns the string form of the reply, or the server error.
func (r Reply) Text() (string, error) {
	if r.Err != nil {
		return "", r.Err
	}
	if r.Null {
		return "", nil
	}
	return r.Str, nil
}

// Integer returns the integer form of the reply, or the server error.
func (r Reply) Integer() (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	return r.Int, nil
}

// readReply decodes one reply frame from the stream.
func readReply(r *bufio.Reader) (Reply, error) {
	line, err := readLine(r)
	if err != nil {
		return Reply{}, fmt.Errorf("read reply: %w", err)
	}
	if line == "" {
		return Reply{}, fmt.Errorf("empty reply")
	}

	switch line[0] {
	case '+':
		return Reply{Kind: KindString, Str: line[1:]}, nil

	case '-':
		return Reply{Kind: KindError, Err: fmt.Errorf("%s", strings.TrimPrefix(line[1:], "Error "))}, nil

	case ':':
		n, err := strconv.ParseInt(line[1:], 10, 64)
		if err != nil {
			return Reply{}, fmt.Errorf("malformed integer reply %q", line)
		}
		return Reply{Kind: KindInteger, Int: n}, nil

	case '$':
		size, err := strconv.Atoi(line[1:])
		if err != nil {
			return Reply{}, fmt.Errorf("malformed bulk reply %q", line)
		}
		if size < 0 {
			return Reply{Kind: KindNull, Null: true}, nil
		}
		val, err := readLine(r)
		if err != nil {
			return Reply{}, fmt.Errorf("read bulk value: %w", err)
		}
		return Reply{Kind: KindString, Str: val}, nil

	default:
		return Reply{}, fmt.Errorf("unexpected reply marker %q", line[0])
	}
}

// readLine reads one \r\n terminated line, stripping the terminator.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}
