package script

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

// SpecialKeys is the fixed set of named placeholder keys a routine may use
// via the ${key=default} syntax. Keys outside this set still resolve: the
// embedded default wins.
var SpecialKeys = []string{
	"ticker",
	"currency",
	"crypto",
	"country",
	"repo",
	"crypto_vs",
	"crypto_full",
	"currency_vs",
}

// Arguments carries the caller-supplied replacement values for one run.
// Positional values substitute $ARGV[i] tokens and take precedence; when
// empty, Special substitutes ${key=default} tokens. An empty Special value
// means "use the script's own default".
type Arguments struct {
	Positional []string
	Special    map[string]string
}

var dynamicPlaceholder = regexp.MustCompile(`\$\{[^{]+=[^{]+\}`)

// ReadLines loads a routine file and returns its raw lines with line
// terminators removed.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	return raw, nil
}

// Resolve turns raw routine lines into executable ones: reset directives,
// comment lines, and blanks are dropped, then placeholders are substituted
// per args. In test mode a trailing exit command is appended when the last
// line lacks one, so the interpreter session always terminates. Appension
// happens at most once; resolving already-resolved lines is a no-op.
func Resolve(raw []string, args Arguments, testMode bool) []string {
	cleaned := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r\n")
		if line == "" || isReset(line) || strings.Contains(line, "#") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var lines []string
	switch {
	case len(args.Positional) > 0:
		lines = make([]string, 0, len(cleaned))
		for _, line := range cleaned {
			for i, arg := range args.Positional {
				line = strings.ReplaceAll(line, indexedToken(i), arg)
			}
			lines = append(lines, line)
		}
	case len(args.Special) > 0:
		lines = make([]string, 0, len(cleaned))
		for _, line := range cleaned {
			lines = append(lines, dynamicPlaceholder.ReplaceAllStringFunc(line, func(match string) string {
				return replaceDynamic(match, args.Special)
			}))
		}
	default:
		lines = cleaned
	}

	if testMode && len(lines) > 0 && !strings.Contains(lines[len(lines)-1], "exit") {
		lines = append(lines, "exit")
	}
	return lines
}

func indexedToken(i int) string {
	return "$ARGV[" + strconv.Itoa(i) + "]"
}

// replaceDynamic resolves one ${key=default} match. The supplied value wins
// when present and non-empty; otherwise the embedded default is used, which
// also covers keys the caller never heard of.
func replaceDynamic(match string, special map[string]string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
	key, def, ok := strings.Cut(inner, "=")
	if !ok {
		return match
	}
	if value, found := special[key]; found && value != "" {
		return value
	}
	return def
}

// isReset reports whether a line is a session reset directive, which has no
// meaning during a replay and is stripped.
func isReset(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "r" || strings.Contains(trimmed, "reset")
}
