package feature

// FlagMode controls a staged feature rollout: disabled for everyone,
// enabled for an allow-list of citizens, or enabled for everyone.
type FlagMode string

const (
	FlagModeNone FlagMode = "NONE"
	FlagModeBeta FlagMode = "BETA"
	FlagModeAll  FlagMode = "ALL"
)

func (m FlagMode) IsValid() bool {
	switch m {
	case FlagModeNone, FlagModeBeta, FlagModeAll:
		return true
	default:
		return false
	}
}

// Predicate reports whether a feature is enabled for a given subject.
type Predicate func(subject string) bool

// NewPredicate builds the per-subject eligibility check for a flag mode.
// Unknown modes behave as NONE.
func NewPredicate(mode FlagMode, betaSubjects []string) Predicate {
	switch mode {
	case FlagModeAll:
		return func(string) bool { return true }
	case FlagModeBeta:
		allowed := make(map[string]struct{}, len(betaSubjects))
		for _, s := range betaSubjects {
			allowed[s] = struct{}{}
		}
		return func(subject string) bool {
			_, ok := allowed[subject]
			return ok
		}
	default:
		return func(string) bool { return false }
	}
}
