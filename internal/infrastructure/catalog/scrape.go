package catalog

import (
	"os/exec"
	"strings"
)

const helpTranscriptLimit = 4000

// helpFlags are the two help-invocation conventions tried per tool.
var helpFlags = []string{"--help", "-h"}

// Docs holds the raw documentation gathered for one tool. Every field is
// best-effort; an empty string means that source was unavailable.
type Docs struct {
	ManSummary string
	Help       string
	Tldr       string
}

// scraper shells out to the documentation tools. Split behind a tiny
// interface so the field-derivation logic is testable without subprocesses.
type scraper interface {
	ManSummary(name string) string
	HelpTranscript(name string) string
	TldrPage(name string) string
}

type execScraper struct{}

// ManSummary returns the whatis one-liner, or "" when unavailable.
func (execScraper) ManSummary(name string) string {
	out, err := exec.Command("whatis", name).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// HelpTranscript captures the tool's help output, preferring whichever of
// --help and -h yields the larger transcript. Per attempt the larger of
// stdout and stderr is kept, since many tools print usage to stderr.
func (execScraper) HelpTranscript(name string) string {
	var best string
	for _, flag := range helpFlags {
		cmd := exec.Command(name, flag)
		var stdout, stderr strings.Builder
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		// Exit status is irrelevant; plenty of tools exit non-zero on -h.
		_ = cmd.Run()
		text := stdout.String()
		if len(stderr.String()) > len(text) {
			text = stderr.String()
		}
		if len(text) > len(best) {
			best = text
		}
	}
	if len(best) <= 20 {
		return ""
	}
	return truncateRunes(best, helpTranscriptLimit)
}

// TldrPage returns community usage examples, or "" when tldr is missing or
// has no page for the tool.
func (execScraper) TldrPage(name string) string {
	out, err := exec.Command("tldr", name).Output()
	if err != nil {
		return ""
	}
	return string(out)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
