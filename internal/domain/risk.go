package domain

// RiskLevel classifies a command set's potential for harm. Safe, Review and
// Dangerous form an ordered scale; Blocked is absorbing and always wins.
type RiskLevel string

const (
	RiskSafe      RiskLevel = "safe"
	RiskReview    RiskLevel = "review"
	RiskDangerous RiskLevel = "dangerous"
	RiskBlocked   RiskLevel = "blocked"
)
