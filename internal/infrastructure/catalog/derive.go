package catalog

import (
	"strings"

	"github.com/doeshing/pls-go/internal/domain"
)

const (
	maxFlags           = 20
	maxTldrExamples    = 5
	exampleWindowChars = 500
	exampleWindowLines = 5
	synopsisScanLines  = 10
	embedSynopsisLimit = 200
	embedExamplesLimit = 300
)

// DeriveDescription takes the manual one-liner when present, else the first
// line of the help transcript.
func DeriveDescription(docs Docs) string {
	if docs.ManSummary != "" {
		return docs.ManSummary
	}
	if docs.Help != "" {
		return firstLine(docs.Help)
	}
	return ""
}

// DeriveSynopsis returns the first line containing a usage marker within the
// help transcript's first lines, else the transcript's first line.
func DeriveSynopsis(docs Docs) string {
	if docs.Help == "" {
		return ""
	}
	lines := strings.Split(docs.Help, "\n")
	for i, line := range lines {
		if i >= synopsisScanLines {
			break
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "usage:") || strings.Contains(lower, "synopsis:") {
			return strings.TrimSpace(line)
		}
	}
	return firstLine(docs.Help)
}

// DeriveFlags extracts flag tokens (lines beginning with -) from the help
// transcript, capped and joined into a comma-delimited string.
func DeriveFlags(docs Docs) string {
	if docs.Help == "" {
		return ""
	}
	var flags []string
	for _, line := range strings.Split(docs.Help, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "---") {
			continue
		}
		token := strings.Fields(trimmed)[0]
		flags = append(flags, strings.TrimSuffix(token, ","))
		if len(flags) >= maxFlags {
			break
		}
	}
	return strings.Join(flags, ", ")
}

// DeriveExamples prefers bullet/code-marked tldr lines; otherwise it takes a
// bounded window of help text following the first occurrence of "example".
func DeriveExamples(docs Docs) string {
	if docs.Tldr != "" {
		var examples []string
		for _, line := range strings.Split(docs.Tldr, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "`") {
				examples = append(examples, line)
				if len(examples) >= maxTldrExamples {
					break
				}
			}
		}
		if len(examples) > 0 {
			return strings.Join(examples, "\n")
		}
	}
	if docs.Help != "" {
		if pos := indexFold(docs.Help, "example"); pos >= 0 {
			window := truncateRunes(docs.Help[pos:], exampleWindowChars)
			lines := strings.Split(window, "\n")
			if len(lines) > exampleWindowLines {
				lines = lines[:exampleWindowLines]
			}
			return strings.Join(lines, "\n")
		}
	}
	return ""
}

// DeriveSource records which documentation source won: community examples
// beat manual pages beat help transcripts; anything else is inferred.
func DeriveSource(docs Docs) domain.DocSource {
	switch {
	case docs.Tldr != "":
		return domain.SourceTldr
	case docs.ManSummary != "":
		return domain.SourceMan
	case docs.Help != "":
		return domain.SourceHelp
	default:
		return domain.SourceInferred
	}
}

// EmbedText builds the compact text an embedding is computed over: name,
// description and bounded prefixes of synopsis and examples.
func EmbedText(name string, docs Docs) string {
	return strings.Join([]string{
		name,
		DeriveDescription(docs),
		truncateRunes(DeriveSynopsis(docs), embedSynopsisLimit),
		truncateRunes(DeriveExamples(docs), embedExamplesLimit),
	}, " ")
}

// indexFold is a case-insensitive strings.Index whose result is a valid byte
// offset into s. Lowercasing s first is not safe for that: some runes change
// byte length when lowered and the offsets drift apart.
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
