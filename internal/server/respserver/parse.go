package respserver

import (
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/keyline-go/internal/core/domain"
)

// Command is one fully validated client request.
//
// Each command is a distinct variant built by structurally parsing the
// generic token sequence, so malformed input surfaces as an explicit
// error instead of an out-of-range token access.
type Command interface {
	// Name returns the canonical (uppercase) command name.
	Name() string
}

// Ping requests a liveness reply.
type Ping struct{}

// Echo requests its message echoed back.
type Echo struct {
	Message string
}

// Get reads one key.
type Get struct {
	Key string
}

// Set writes one key, optionally with a TTL from a PX qualifier.
type Set struct {
	Key    string
	Value  []byte
	TTL    time.Duration
	HasTTL bool
}

// Del removes one or more keys.
type Del struct {
	Keys []string
}

// Exists counts how many of the given keys are present.
type Exists struct {
	Keys []string
}

// TTL reports the remaining time to live of one key.
type TTL struct {
	Key string
}

// Quit asks the server to close the connection.
type Quit struct{}

func (Ping) Name() string   { return "PING" }
func (Echo) Name() string   { return "ECHO" }
func (Get) Name() string    { return "GET" }
func (Set) Name() string    { return "SET" }
func (Del) Name() string    { return "DEL" }
func (Exists) Name() string { return "EXISTS" }
func (TTL) Name() string    { return "TTL" }
func (Quit) Name() string   { return "QUIT" }

// ParseCommand interprets a decoded token sequence as one command.
//
// The expected shape is an array-count marker (*<n>) followed by n pairs
// of length marker ($<len>) and argument token. The numeric value of the
// length markers is not checked against the argument sizes: the decoder
// splits textually and binary-safe arguments are out of scope.
func ParseCommand(tokens []string) (Command, error) {
	args, err := extractArgs(tokens)
	if err != nil {
		return nil, err
	}

	name := strings.ToUpper(args[0])
	switch name {
	case "PING":
		// Extra tokens are tolerated: PING is a liveness probe.
		return Ping{}, nil

	case "ECHO":
		if len(args) != 2 {
			return nil, domain.ErrMalformedRequest.WithDetails("ECHO expects exactly one argument")
		}
		return Echo{Message: args[1]}, nil

	case "GET":
		if len(args) != 2 {
			return nil, domain.ErrMalformedRequest.WithDetails("GET expects exactly one key")
		}
		return Get{Key: args[1]}, nil

	case "SET":
		return parseSet(args)

	case "DEL":
		if len(args) < 2 {
			return nil, domain.ErrMalformedRequest.WithDetails("DEL expects at least one key")
		}
		return Del{Keys: args[1:]}, nil

	case "EXISTS":
		if len(args) < 2 {
			return nil, domain.ErrMalformedRequest.WithDetails("EXISTS expects at least one key")
		}
		return Exists{Keys: args[1:]}, nil

	case "TTL":
		if len(args) != 2 {
			return nil, domain.ErrMalformedRequest.WithDetails("TTL expects exactly one key")
		}
		return TTL{Key: args[1]}, nil

	case "QUIT":
		return Quit{}, nil

	default:
		return nil, domain.ErrUnknownCommand.WithDetails(name)
	}
}

// parseSet handles SET <key> <value> [PX <milliseconds>].
func parseSet(args []string) (Command, error) {
	switch len(args) {
	case 3:
		return Set{Key: args[1], Value: []byte(args[2])}, nil
	case 5:
		if !strings.EqualFold(args[3], "PX") {
			return nil, domain.ErrMalformedRequest.WithDetails("SET supports only the PX qualifier")
		}
		ms, err := strconv.ParseInt(args[4], 10, 64)
		if err != nil {
			return nil, domain.ErrMalformedRequest.WithDetails("PX value is not an integer")
		}
		return Set{
			Key:    args[1],
			Value:  []byte(args[2]),
			TTL:    time.Duration(ms) * time.Millisecond,
			HasTTL: true,
		}, nil
	default:
		return nil, domain.ErrMalformedRequest.WithDetails("SET expects a key, a value, and an optional PX qualifier")
	}
}

// extractArgs validates the generic array shape and returns the logical
// argument tokens.
func extractArgs(tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, domain.ErrMalformedRequest.WithDetails("empty request")
	}

	count, ok := parseMarker(tokens[0], '*')
	if !ok {
		return nil, domain.ErrMalformedRequest.WithDetails("missing array marker")
	}
	if count <= 0 {
		return nil, domain.ErrMalformedRequest.WithDetails("empty command array")
	}

	pairs := tokens[1:]
	if len(pairs) != 2*count {
		return nil, domain.ErrMalformedRequest.WithDetails("token count does not match array marker")
	}

	args := make([]string, 0, count)
	for i := 0; i < len(pairs); i += 2 {
		if _, ok := parseMarker(pairs[i], '$'); !ok {
			return nil, domain.ErrMalformedRequest.WithDetails("missing length marker")
		}
		args = append(args, pairs[i+1])
	}

	return args, nil
}

// parseMarker parses a one-character marker token such as *2 or $5.
func parseMarker(tok string, prefix byte) (int, bool) {
	if len(tok) < 2 || tok[0] != prefix {
		return 0, false
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
