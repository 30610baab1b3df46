package pose

// Connection is an unordered pair of landmark indices joined by a bone
type Connection struct {
	A int
	B int
}

// connections defines the skeleton bones to draw lines between, matching
// the BlazePose topology: face contours among indices 0-10, arms with
// hand tips, the shoulder/hip trunk, and legs down to the foot index.
// Fixed at process start and never mutated.
var connections = [35]Connection{
	// face
	{Nose, LeftEyeInner}, {LeftEyeInner, LeftEye}, {LeftEye, LeftEyeOuter},
	{LeftEyeOuter, LeftEar}, {Nose, RightEyeInner}, {RightEyeInner, RightEye},
	{RightEye, RightEyeOuter}, {RightEyeOuter, RightEar}, {MouthLeft, MouthRight},
	// arms
	{LeftShoulder, RightShoulder},
	{LeftShoulder, LeftElbow}, {LeftElbow, LeftWrist},
	{LeftWrist, LeftPinky}, {LeftWrist, LeftIndex}, {LeftWrist, LeftThumb},
	{LeftPinky, LeftIndex},
	{RightShoulder, RightElbow}, {RightElbow, RightWrist},
	{RightWrist, RightPinky}, {RightWrist, RightIndex}, {RightWrist, RightThumb},
	{RightPinky, RightIndex},
	// trunk
	{LeftShoulder, LeftHip}, {RightShoulder, RightHip}, {LeftHip, RightHip},
	// legs
	{LeftHip, LeftKnee}, {RightHip, RightKnee},
	{LeftKnee, LeftAnkle}, {RightKnee, RightAnkle},
	{LeftAnkle, LeftHeel}, {RightAnkle, RightHeel},
	{LeftHeel, LeftFootIndex}, {RightHeel, RightFootIndex},
	{LeftAnkle, LeftFootIndex}, {RightAnkle, RightFootIndex},
}

// Connections returns the full skeleton connection table
func Connections() []Connection {
	return connections[:]
}

// EligibleConnections returns the skeleton connections whose endpoints are
// both members of the given, already filtered, landmark set.  A bone
// touching an excluded landmark is never drawn even when its other endpoint
// survived the filter.
func EligibleConnections(s *LandmarkSet) []Connection {
	if s == nil {
		return nil
	}

	eligible := make([]Connection, 0, len(connections))

	for _, c := range connections {
		if s.present[c.A] && s.present[c.B] {
			eligible = append(eligible, c)
		}
	}

	return eligible
}
