package physics

// DefaultTrailCapacity is the number of positions a trail keeps.
const DefaultTrailCapacity = 300

// Trail is a fixed-capacity history of positions, oldest first.
// When full, pushing a point evicts the oldest one.
type Trail struct {
	points []Vec2
	head   int
	size   int
}

func NewTrail(capacity int) (*Trail, error) {
	if capacity < 1 {
		return nil, ErrTrailCapacity
	}
	return &Trail{points: make([]Vec2, capacity)}, nil
}

func (t *Trail) Len() int { return t.size }
func (t *Trail) Cap() int { return len(t.points) }

// Push appends p as the most recent point.
func (t *Trail) Push(p Vec2) {
	idx := (t.head + t.size) % len(t.points)
	t.points[idx] = p
	if t.size < len(t.points) {
		t.size++
		return
	}
	t.head = (t.head + 1) % len(t.points)
}

// At returns the i-th point, 0 being the oldest.
func (t *Trail) At(i int) Vec2 {
	return t.points[(t.head+i)%len(t.points)]
}

// Last returns the most recent point and false when the trail is empty.
func (t *Trail) Last() (Vec2, bool) {
	if t.size == 0 {
		return Vec2{}, false
	}
	return t.At(t.size - 1), true
}

// Points copies the trail into a new slice, oldest first.
func (t *Trail) Points() []Vec2 {
	out := make([]Vec2, t.size)
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}

func (t *Trail) Clear() {
	t.head = 0
	t.size = 0
}
