package sim

// Scale request priorities. A pause always beats a freeze frame, which
// beats goal slow motion.
const (
	PrioritySlowMotion = 25
	PriorityFreeze     = 50
	PriorityPause      = 100
)

// ScaleHandle identifies an active scale request so it can be released.
type ScaleHandle uint64

type scaleRequest struct {
	handle   ScaleHandle
	name     string
	scale    float64
	priority int
	seq      uint64
}

// TimeAuthority is the single owner of the simulation time scale. Systems
// request a scale with a name and priority; exactly one request is effective
// at a time. Conflicts resolve deterministically: highest priority wins,
// ties go to the most recent request. Releasing a request restores the next
// one, or 1.0 when none remain.
//
// The engine tick is the only caller, so no locking is needed.
type TimeAuthority struct {
	requests []scaleRequest
	nextID   ScaleHandle
	seq      uint64
}

// NewTimeAuthority returns an authority running at normal speed.
func NewTimeAuthority() *TimeAuthority {
	return &TimeAuthority{}
}

// Request registers a named scale request and returns its handle.
func (ta *TimeAuthority) Request(name string, scale float64, priority int) ScaleHandle {
	ta.nextID++
	ta.seq++
	ta.requests = append(ta.requests, scaleRequest{
		handle:   ta.nextID,
		name:     name,
		scale:    scale,
		priority: priority,
		seq:      ta.seq,
	})
	return ta.nextID
}

// Release removes a request. Releasing an unknown or already-released
// handle is a no-op, so out-of-order cancellation cannot corrupt the scale.
func (ta *TimeAuthority) Release(h ScaleHandle) {
	for i, r := range ta.requests {
		if r.handle == h {
			ta.requests = append(ta.requests[:i], ta.requests[i+1:]...)
			return
		}
	}
}

// Scale returns the effective time scale.
func (ta *TimeAuthority) Scale() float64 {
	if len(ta.requests) == 0 {
		return 1.0
	}
	best := ta.requests[0]
	for _, r := range ta.requests[1:] {
		if r.priority > best.priority || (r.priority == best.priority && r.seq > best.seq) {
			best = r
		}
	}
	return best.scale
}

// Active returns the name of the effective request, or "" at normal speed.
func (ta *TimeAuthority) Active() string {
	if len(ta.requests) == 0 {
		return ""
	}
	best := ta.requests[0]
	for _, r := range ta.requests[1:] {
		if r.priority > best.priority || (r.priority == best.priority && r.seq > best.seq) {
			best = r
		}
	}
	return best.name
}
