package externalapi

import "fmt"

// Verdict is the outcome of validating a single transaction, as reported
// to the relay layer. MisbehaviorScore is meaningful only for rejected
// transactions.
type Verdict struct {
	Accepted         bool
	MisbehaviorScore int
	Reason           string
}

// NewAcceptedVerdict returns a verdict accepting a transaction
func NewAcceptedVerdict() *Verdict {
	return &Verdict{Accepted: true}
}

// NewRejectedVerdict returns a verdict rejecting a transaction
func NewRejectedVerdict(misbehaviorScore int, reason string) *Verdict {
	return &Verdict{
		Accepted:         false,
		MisbehaviorScore: misbehaviorScore,
		Reason:           reason,
	}
}

func (v *Verdict) String() string {
	if v.Accepted {
		return "accepted"
	}
	return fmt.Sprintf("rejected (misbehavior score %d): %s", v.MisbehaviorScore, v.Reason)
}
