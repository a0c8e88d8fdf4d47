package peak

// loopTailWindow is the number of trailing samples in which a repeated
// right-edge refinement ends the scan.
const loopTailWindow = 10

// LoopGuard remembers the last right edge produced by an overshooting
// refinement. Seeing the same edge again near the end of the trace means
// the scan would revisit the same candidate forever.
type LoopGuard struct {
	length int
	last   int
	armed  bool
}

// NewLoopGuard returns a guard for a trace of length samples.
func NewLoopGuard(length int) *LoopGuard {
	return &LoopGuard{length: length}
}

// IsLooped reports whether index equals the stored edge and lies within
// the last loopTailWindow samples.
func (g *LoopGuard) IsLooped(index int) bool {
	return g.armed && index == g.last && index > g.length-loopTailWindow
}

// Update stores index as the new reference edge.
func (g *LoopGuard) Update(index int) {
	g.last = index
	g.armed = true
}
