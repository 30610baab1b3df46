package pose

import (
	"image"
	"math"
)

// Landmark indices following the BlazePose 33 point topology.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	// NumLandmarks is the total number of landmarks in a full body pose
	NumLandmarks = 33
)

// Landmark is a single detected body keypoint.  X and Y are fractional
// positions relative to the frame width and height and may fall slightly
// outside [0.0, 1.0] when a limb is partly off frame.  Z is the relative
// depth with the hips as origin.  Visibility is the model's confidence
// in [0.0, 1.0] that the point is visible and correctly located.
type Landmark struct {
	Index      int
	X          float64
	Y          float64
	Z          float64
	Visibility float64
}

// Pixel maps the landmark's normalized position to pixel coordinates for a
// frame of the given width and height.  No clamping is performed, an off
// frame landmark maps to coordinates outside the frame and drawing
// primitives clip it silently.
func (l Landmark) Pixel(width, height int) image.Point {
	return image.Pt(
		int(math.Round(l.X*float64(width))),
		int(math.Round(l.Y*float64(height))),
	)
}

// LandmarkSet holds the landmarks detected for one body in one frame,
// indexed by landmark index.  A frame with no detected person is
// represented as a nil *LandmarkSet, not an empty one.
type LandmarkSet struct {
	points  [NumLandmarks]Landmark
	present [NumLandmarks]bool
}

// NewLandmarkSet returns an empty LandmarkSet
func NewLandmarkSet() *LandmarkSet {
	return &LandmarkSet{}
}

// Put adds the landmark to the set.  Landmarks with an index outside
// [0, NumLandmarks) are ignored.
func (s *LandmarkSet) Put(l Landmark) {
	if l.Index < 0 || l.Index >= NumLandmarks {
		return
	}
	s.points[l.Index] = l
	s.present[l.Index] = true
}

// Get returns the landmark with the given index and whether it is a
// member of the set
func (s *LandmarkSet) Get(index int) (Landmark, bool) {
	if index < 0 || index >= NumLandmarks || !s.present[index] {
		return Landmark{}, false
	}
	return s.points[index], true
}

// Len returns the number of landmarks in the set
func (s *LandmarkSet) Len() int {
	count := 0
	for _, p := range s.present {
		if p {
			count++
		}
	}
	return count
}

// Indices returns the sorted indices of all landmarks in the set
func (s *LandmarkSet) Indices() []int {
	idx := make([]int, 0, NumLandmarks)
	for i, p := range s.present {
		if p {
			idx = append(idx, i)
		}
	}
	return idx
}
