package filter

// Source identifies where a throw was made.
type Source struct {
	Hand int
	Beat int
}

type catchSlot struct {
	count  int // non-hold landings registered with Catch
	src    Source
	seeded int // non-hold landings known before the search started
}

// Catches is the multiplex filter: it records, per hand and catch beat,
// the non-hold throws landing together and rejects a landing that would
// join throws from another source. Objects thrown together from one hand
// on one beat form a cluster, which is legal only when clusters are allowed.
//
// Holds never reach the table; a hand keeping an object while catching
// another is not a simultaneous catch.
type Catches struct {
	beats    int
	clusters bool
	slots    []catchSlot
}

// NewCatches allocates a table for hands x beats catch slots.
func NewCatches(hands, beats int, clusters bool) *Catches {
	return &Catches{
		beats:    beats,
		clusters: clusters,
		slots:    make([]catchSlot, hands*beats),
	}
}

// Beats returns the number of catch beats per hand.
func (c *Catches) Beats() int {
	return c.beats
}

// Reset empties every slot.
func (c *Catches) Reset() {
	clear(c.slots)
}

// Seed records a landing that is fixed before the search starts, such as
// a throw from the pattern a transition leaves. Seeded landings are never
// checked against each other.
func (c *Catches) Seed(hand, beat int) {
	if beat < 0 || beat >= c.beats {
		return
	}
	c.slots[hand*c.beats+beat].seeded++
}

// Catch registers a non-hold throw from src landing in hand on beat and
// reports whether it is allowed. A rejected throw is not registered.
func (c *Catches) Catch(hand, beat int, src Source) bool {
	s := &c.slots[hand*c.beats+beat]
	if s.seeded > 0 {
		return false
	}
	if s.count > 0 {
		if s.src != src || !c.clusters {
			return false
		}
	}
	if s.count == 0 {
		s.src = src
	}
	s.count++
	return true
}

// Release undoes the last successful Catch on the slot.
func (c *Catches) Release(hand, beat int) {
	c.slots[hand*c.beats+beat].count--
}

// Count returns the non-hold landings registered on a slot, seeded ones
// included.
func (c *Catches) Count(hand, beat int) int {
	s := c.slots[hand*c.beats+beat]
	return s.count + s.seeded
}
