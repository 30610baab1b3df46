package pose

// face landmarks occupy indices 0-10: nose, eyes, ears and mouth corners
const faceLandmarkEnd = MouthRight

// FilterPolicy selects which landmark indices are eligible for rendering
type FilterPolicy int

const (
	// ExcludeFace drops the face landmarks (indices 0-10) so only the
	// body skeleton is rendered
	ExcludeFace FilterPolicy = iota
	// IncludeAll passes every landmark through
	IncludeAll
)

// Keep reports whether a landmark with the given index satisfies the policy
func (p FilterPolicy) Keep(index int) bool {
	if p == ExcludeFace && index <= faceLandmarkEnd {
		return false
	}
	return true
}

// Filter returns a new set containing the landmarks whose index satisfies
// the policy.  Landmark values are never altered, only membership.
func (s *LandmarkSet) Filter(p FilterPolicy) *LandmarkSet {
	out := NewLandmarkSet()

	for i, pr := range s.present {
		if pr && p.Keep(i) {
			out.Put(s.points[i])
		}
	}

	return out
}
