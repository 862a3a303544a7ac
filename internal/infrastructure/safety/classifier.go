// Package safety classifies command sets by risk. The classifier is
// deliberately syntactic: it matches literal substrings and leading tokens,
// and does not parse shell grammar, resolve aliases or see through command
// substitution. That is an accepted limitation of the design.
package safety

import (
	"strings"

	"github.com/doeshing/pls-go/internal/domain"
	"github.com/doeshing/pls-go/internal/ports"
)

// destructivePrograms are leading tokens that always escalate to Dangerous,
// compared case-sensitively.
var destructivePrograms = []string{"rm", "dd", "mkfs", "fdisk", "parted", "shred"}

// Classifier implements the RiskClassifier port as a pure function.
type Classifier struct{}

// New builds a classifier.
func New() Classifier {
	return Classifier{}
}

// Assess evaluates rules in precedence order, first match wins:
// Blocked (configured dangerous substring over the space-joined set),
// Dangerous (destructive leading token), Safe (every leading token in the
// allowlist), Review otherwise.
func (Classifier) Assess(commands []string, cfg domain.SafetyConfig) domain.RiskLevel {
	joined := strings.Join(commands, " ")
	for _, pattern := range cfg.DangerousPatterns {
		if pattern != "" && strings.Contains(joined, pattern) {
			return domain.RiskBlocked
		}
	}

	for _, command := range commands {
		first := firstToken(command)
		for _, name := range destructivePrograms {
			if first == name {
				return domain.RiskDangerous
			}
		}
	}

	allSafe := true
	for _, command := range commands {
		base := firstToken(command)
		if i := strings.LastIndex(base, "/"); i >= 0 {
			base = base[i+1:]
		}
		if !contains(cfg.SafeCommands, base) {
			allSafe = false
			break
		}
	}
	if allSafe && len(commands) > 0 {
		return domain.RiskSafe
	}
	return domain.RiskReview
}

func firstToken(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

var _ ports.RiskClassifier = Classifier{}
