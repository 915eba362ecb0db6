package dotenv

import "strings"

// Pair is a single KEY=VALUE assignment parsed from a .env line.
type Pair struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// ParseLine parses one line of a .env file into a Pair.
//
// Blank lines, comment lines and lines without a '=' produce no pair; the
// second return value reports whether a pair was produced. A '#' opens a
// comment wherever it appears, so a '#' before the first '=' comments out
// the assignment itself and the line produces nothing. Otherwise the line
// is split on the first '=' only, the value is truncated at the first '#'
// (there is no quoting, so a literal '#' cannot appear in a value), and
// both key and value are trimmed of surrounding whitespace. A line like
// "KEY=" yields an empty value.
func ParseLine(line string) (Pair, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Pair{}, false
	}

	eq := strings.IndexByte(trimmed, '=')
	if eq < 0 {
		return Pair{}, false
	}
	if hash := strings.IndexByte(trimmed, '#'); hash >= 0 && hash < eq {
		return Pair{}, false
	}

	key := strings.TrimSpace(trimmed[:eq])
	if key == "" {
		return Pair{}, false
	}

	rest := trimmed[eq+1:]
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest = rest[:i]
	}

	return Pair{Key: key, Value: strings.TrimSpace(rest)}, true
}

// ParseLines parses a whole buffer of .env content, in order of appearance.
// Lines that produce no pair are dropped.
func ParseLines(s string) []Pair {
	var pairs []Pair
	for _, line := range strings.Split(s, "\n") {
		if p, ok := ParseLine(line); ok {
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// Keys returns the keys of the given pairs, in order.
func Keys(pairs []Pair) []string {
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.Key)
	}
	return keys
}
