package curio

// Aggregation primitives shared by every metric evaluator. All of them
// remember the order in which keys first appeared: leader selection is
// strict greater-than (or less-than), so the first key to reach an extreme
// keeps it and row order becomes part of the tie-break contract. The facade
// feeds rows in primary-key order, which makes ties deterministic.

// LeaderEntry is one key/value pair offered for leader selection
type LeaderEntry struct {
	Key   int
	Value float64
}

// Counter tallies an integer per key
type Counter struct {
	counts map[int]int
	order  []int
}

// NewCounter creates an empty Counter
func NewCounter() *Counter {
	return &Counter{counts: make(map[int]int)}
}

// Incr adds one to the key's tally
func (c *Counter) Incr(key int) {
	c.Add(key, 1)
}

// Add adds n to the key's tally
func (c *Counter) Add(key int, n int) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

// Get returns the key's tally
func (c *Counter) Get(key int) int {
	return c.counts[key]
}

// Entries returns all tallies in first-occurrence order
func (c *Counter) Entries() []LeaderEntry {
	entries := make([]LeaderEntry, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, LeaderEntry{Key: key, Value: float64(c.counts[key])})
	}
	return entries
}

// Ratio accumulates a numerator and denominator per key. A key only becomes
// a candidate once its denominator strictly exceeds MinSample; it keeps
// accumulating either way.
type Ratio struct {
	MinSample float64

	num   map[int]float64
	den   map[int]float64
	order []int
}

// NewRatio creates an empty Ratio with the given minimum-sample guard
func NewRatio(minSample float64) *Ratio {
	return &Ratio{
		MinSample: minSample,
		num:       make(map[int]float64),
		den:       make(map[int]float64),
	}
}

// Add accumulates numerator and denominator for the key
func (r *Ratio) Add(key int, num, den float64) {
	if _, seen := r.den[key]; !seen {
		r.order = append(r.order, key)
	}
	r.num[key] += num
	r.den[key] += den
}

// Value returns the key's current ratio, 0 when the denominator is 0
func (r *Ratio) Value(key int) float64 {
	if r.den[key] == 0 {
		return 0
	}
	return r.num[key] / r.den[key]
}

// Sample returns the key's accumulated denominator
func (r *Ratio) Sample(key int) float64 {
	return r.den[key]
}

// Entries returns the ratios of all keys that clear the minimum-sample
// guard, in first-occurrence order. Keys at or below the guard are not
// candidates even when their ratio is numerically the best.
func (r *Ratio) Entries() []LeaderEntry {
	var entries []LeaderEntry
	for _, key := range r.order {
		if r.den[key] <= r.MinSample {
			continue
		}
		entries = append(entries, LeaderEntry{Key: key, Value: r.num[key] / r.den[key]})
	}
	return entries
}

// StreakTracker finds the longest consecutive run of a per-match condition.
// Observations must arrive in chronological order per key; unplayed matches
// must simply not be observed, they neither advance nor reset a run.
type StreakTracker struct {
	current map[int]int
	best    map[int]int
	order   []int
}

// NewStreakTracker creates an empty StreakTracker
func NewStreakTracker() *StreakTracker {
	return &StreakTracker{
		current: make(map[int]int),
		best:    make(map[int]int),
	}
}

// Observe feeds one match result for the key
func (s *StreakTracker) Observe(key int, qualifies bool) {
	if _, seen := s.current[key]; !seen {
		s.order = append(s.order, key)
	}
	if qualifies {
		s.current[key]++
		if s.current[key] > s.best[key] {
			s.best[key] = s.current[key]
		}
	} else {
		s.current[key] = 0
	}
}

// Current returns the key's run in progress
func (s *StreakTracker) Current(key int) int {
	return s.current[key]
}

// Best returns the key's longest run seen
func (s *StreakTracker) Best(key int) int {
	return s.best[key]
}

// Entries returns every key's best run in first-occurrence order, keeping
// only runs of at least minLength
func (s *StreakTracker) Entries(minLength int) []LeaderEntry {
	var entries []LeaderEntry
	for _, key := range s.order {
		if s.best[key] < minLength {
			continue
		}
		entries = append(entries, LeaderEntry{Key: key, Value: float64(s.best[key])})
	}
	return entries
}

// SetTracker maps a key to a set of distinct related ids; the leadership
// value is the set's size
type SetTracker struct {
	sets  map[int]map[int]bool
	order []int
}

// NewSetTracker creates an empty SetTracker
func NewSetTracker() *SetTracker {
	return &SetTracker{sets: make(map[int]map[int]bool)}
}

// Add records the member in the key's set
func (s *SetTracker) Add(key int, member int) {
	if _, seen := s.sets[key]; !seen {
		s.order = append(s.order, key)
		s.sets[key] = make(map[int]bool)
	}
	s.sets[key][member] = true
}

// Cardinality returns the size of the key's set
func (s *SetTracker) Cardinality(key int) int {
	return len(s.sets[key])
}

// Entries returns every key's cardinality in first-occurrence order
func (s *SetTracker) Entries() []LeaderEntry {
	entries := make([]LeaderEntry, 0, len(s.order))
	for _, key := range s.order {
		entries = append(entries, LeaderEntry{Key: key, Value: float64(len(s.sets[key]))})
	}
	return entries
}

// MaxLeader returns the entry with the strict maximum value. The first entry
// to reach the maximum wins; later equal values do not replace it. The bool
// is false for an empty input.
func MaxLeader(entries []LeaderEntry) (LeaderEntry, bool) {
	var leader LeaderEntry
	found := false
	for _, e := range entries {
		if !found || e.Value > leader.Value {
			leader = e
			found = true
		}
	}
	return leader, found
}

// MinLeader returns the entry with the strict minimum value, first wins ties
func MinLeader(entries []LeaderEntry) (LeaderEntry, bool) {
	var leader LeaderEntry
	found := false
	for _, e := range entries {
		if !found || e.Value < leader.Value {
			leader = e
			found = true
		}
	}
	return leader, found
}
