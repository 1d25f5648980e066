package reveal

import "time"

// Stagger computes start delays so sibling reveals cascade instead of starting together.
type Stagger struct {
	// PerOwner delays each owner (a panel item) after the previous one.
	PerOwner time.Duration
	// PerUnit delays a text by the length of the sibling text revealed before it.
	PerUnit time.Duration
}

// DefaultStagger spaces items by 200ms and waits 50ms per preceding unit.
var DefaultStagger = Stagger{
	PerOwner: 200 * time.Millisecond,
	PerUnit:  50 * time.Millisecond,
}

// Delay returns ownerIndex×PerOwner + precedingUnits×PerUnit.
func (s Stagger) Delay(ownerIndex, precedingUnits int) time.Duration {
	return time.Duration(max(ownerIndex, 0))*s.PerOwner + time.Duration(max(precedingUnits, 0))*s.PerUnit
}
