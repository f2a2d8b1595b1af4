package script

import "strings"

// Translate converts resolved routine lines into the single slash-delimited
// invocation the interpreter expects. An export directive on the first line
// is pulled out and re-attached ahead of the translated path. Doubled
// separators collapse into a home segment, returning navigation to the root
// context.
func Translate(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	exportFolder := ""
	if _, folder, ok := strings.Cut(lines[0], "export "); ok {
		exportFolder = strings.TrimRight(folder, " \t")
		lines = lines[1:]
	}

	trimmed := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed = append(trimmed, strings.TrimRight(line, " \t"))
	}

	joined := "/" + strings.Join(trimmed, "/")
	joined = strings.ReplaceAll(joined, "//", "/home/")

	tokens := strings.Fields(joined)
	if len(tokens) > 0 && !strings.HasPrefix(tokens[0], "/") {
		tokens[0] = "/" + tokens[0]
	}
	path := strings.Join(tokens, " ")

	if exportFolder != "" {
		return "export " + exportFolder + " " + path
	}
	return path
}

// FirstCommand returns the first command token of a translated invocation,
// used to derive capture file names. For "/stocks/load AAPL" it returns
// "stocks"; for an export-prefixed invocation the export directive is
// skipped.
func FirstCommand(invocation string) string {
	if rest, ok := strings.CutPrefix(invocation, "export "); ok {
		if _, path, found := strings.Cut(rest, " /"); found {
			invocation = "/" + path
		}
	}
	parts := strings.SplitN(invocation, "/", 3)
	if len(parts) < 2 {
		return ""
	}
	fields := strings.Fields(parts[1])
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
