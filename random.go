// File: props/random.go
package props

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// randomPattern recognizes ${random.<kind>}, ${random.<kind>(N)} and
// ${random.<kind>[L,U]} expressions inside property values.
var randomPattern = regexp.MustCompile(
	`\$\{\s?random\.(\S+?)(\(-?\d+(?:\.\d+)?\)|\[-?\d+(?:\.\d+)?,\s?-?\d+(?:\.\d+)?])?}`)

// PortScanner finds a free TCP port for ${random.port} expressions.
type PortScanner interface {
	FindAvailableTCPPort() (int, error)
}

// tcpPortScanner asks the kernel for an ephemeral loopback port.
type tcpPortScanner struct{}

func (tcpPortScanner) FindAvailableTCPPort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("no available TCP port: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// randomExpander replaces ${random.*} expressions at ingestion time.
// Unbounded draws use a cryptographically strong source; bounded and ranged
// draws use math/rand, preserving the asymmetry of the original scheme.
type randomExpander struct {
	prefix string // placeholder trigger prefix; gates the regex scan
	ports  PortScanner

	// legacyBound reproduces the historical handling of a single
	// non-negative integer bound, where ${random.int(N)} always produced 1.
	// When unset the bound draws uniformly in [0, N).
	legacyBound bool
}

// expand substitutes every random expression in s. Values from
// environment-variable sources are never expanded. Unknown kinds and
// malformed bounds abort ingestion of the source.
func (e *randomExpander) expand(property, s string, convention Convention) (string, error) {
	if convention == ConventionEnvironmentVariable || !strings.Contains(s, e.prefix) {
		return s, nil
	}

	matches := randomPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		last = m[1]

		kind := strings.ToLower(strings.TrimSpace(s[m[2]:m[3]]))
		var rangeStr string
		if m[4] > -1 {
			// Strip the (..) or [..] delimiters.
			rangeStr = s[m[4]+1 : m[5]-1]
		}

		var replacement string
		var err error
		switch kind {
		case "port":
			var port int
			port, err = e.ports.FindAvailableTCPPort()
			replacement = strconv.Itoa(port)
		case "int", "integer":
			replacement, err = e.nextInt(rangeStr, property)
		case "long":
			replacement, err = e.nextLong(rangeStr, property)
		case "float":
			replacement, err = e.nextFloat(rangeStr, property)
		case "shortuuid":
			replacement = uuid.NewString()[25:35]
		case "uuid":
			replacement = uuid.NewString()
		case "uuid2":
			replacement = strings.ReplaceAll(uuid.NewString(), "-", "")
		default:
			err = fmt.Errorf("%w: %q for property %q",
				ErrInvalidRandomExpression, s[m[0]:m[1]], property)
		}
		if err != nil {
			return "", err
		}
		b.WriteString(replacement)
	}
	b.WriteString(s[last:])

	return b.String(), nil
}

func (e *randomExpander) nextInt(rangeStr, property string) (string, error) {
	if rangeStr == "" {
		u, err := secureUint64()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(int64(int32(u)), 10), nil
	}

	tokens := strings.Split(rangeStr, ",")
	lower, err := strconv.ParseInt(strings.TrimSpace(tokens[0]), 10, 32)
	if err != nil {
		return "", rangeError(rangeStr, "int", property)
	}
	if len(tokens) == 1 {
		if e.legacyBound && lower >= 0 {
			return "1", nil
		}
		return strconv.FormatInt(boundedInt(lower), 10), nil
	}
	upper, err := strconv.ParseInt(strings.TrimSpace(tokens[1]), 10, 32)
	if err != nil {
		return "", rangeError(rangeStr, "int", property)
	}
	return strconv.FormatInt(lower+int64(rand.Float64()*float64(upper-lower)), 10), nil
}

func (e *randomExpander) nextLong(rangeStr, property string) (string, error) {
	if rangeStr == "" {
		u, err := secureUint64()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(int64(u), 10), nil
	}

	tokens := strings.Split(rangeStr, ",")
	lower, err := strconv.ParseInt(strings.TrimSpace(tokens[0]), 10, 64)
	if err != nil {
		return "", rangeError(rangeStr, "long", property)
	}
	if len(tokens) == 1 {
		return strconv.FormatInt(boundedInt(lower), 10), nil
	}
	upper, err := strconv.ParseInt(strings.TrimSpace(tokens[1]), 10, 64)
	if err != nil {
		return "", rangeError(rangeStr, "long", property)
	}
	return strconv.FormatInt(lower+int64(rand.Float64()*float64(upper-lower)), 10), nil
}

func (e *randomExpander) nextFloat(rangeStr, property string) (string, error) {
	if rangeStr == "" {
		u, err := secureUint64()
		if err != nil {
			return "", err
		}
		// 24-bit mantissa draw in [0, 1).
		f := float32(u>>40) / float32(1<<24)
		return strconv.FormatFloat(float64(f), 'f', -1, 32), nil
	}

	tokens := strings.Split(rangeStr, ",")
	lower, err := strconv.ParseFloat(strings.TrimSpace(tokens[0]), 32)
	if err != nil {
		return "", rangeError(rangeStr, "float", property)
	}
	if len(tokens) == 1 {
		f := float32(rand.Float64() * lower)
		return strconv.FormatFloat(float64(f), 'f', -1, 32), nil
	}
	upper, err := strconv.ParseFloat(strings.TrimSpace(tokens[1]), 32)
	if err != nil {
		return "", rangeError(rangeStr, "float", property)
	}
	f := float32(lower + rand.Float64()*(upper-lower))
	return strconv.FormatFloat(float64(f), 'f', -1, 32), nil
}

// boundedInt draws in [0, n) for positive n, in (-|n|, 0] for negative n,
// and returns 0 for a zero bound.
func boundedInt(n int64) int64 {
	switch {
	case n > 0:
		return rand.Int63n(n)
	case n < 0:
		return -rand.Int63n(-n)
	default:
		return 0
	}
}

func secureUint64() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("random source failure: %w", err)
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func rangeError(rangeStr, kind, property string) error {
	return fmt.Errorf("%w: %q for type %s while parsing property %q",
		ErrInvalidRandomRange, rangeStr, kind, property)
}
