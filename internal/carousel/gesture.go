package carousel

type Direction int

const (
	SwipeNone Direction = iota
	SwipeLeft
	SwipeRight
)

func (d Direction) String() string {
	switch d {
	case SwipeLeft:
		return "left"
	case SwipeRight:
		return "right"
	default:
		return "none"
	}
}

const DefaultThreshold = 50

// Gesture tracks one horizontal touch gesture. End reports the swipe and
// resets the tracker for the next gesture.
type Gesture struct {
	threshold float64
	active    bool
	startX    float64
	lastX     float64
}

func NewGesture(threshold float64) *Gesture {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Gesture{threshold: threshold}
}

func (g *Gesture) Begin(x float64) {
	g.active = true
	g.startX = x
	g.lastX = x
}

// Move is ignored when no gesture is in progress.
func (g *Gesture) Move(x float64) {
	if !g.active {
		return
	}
	g.lastX = x
}

func (g *Gesture) Active() bool {
	return g.active
}

func (g *Gesture) End() Direction {
	if !g.active {
		return SwipeNone
	}
	delta := g.lastX - g.startX
	g.reset()
	switch {
	case delta <= -g.threshold:
		return SwipeLeft
	case delta >= g.threshold:
		return SwipeRight
	default:
		return SwipeNone
	}
}

func (g *Gesture) Cancel() {
	g.reset()
}

func (g *Gesture) reset() {
	g.active = false
	g.startX = 0
	g.lastX = 0
}
