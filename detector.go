package pose

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Model complexity selects which variant of the landmark model to run,
// trading accuracy for inference speed
const (
	ComplexityLite  = 0
	ComplexityFull  = 1
	ComplexityHeavy = 2
)

// Detector is the boundary to a pose landmark model.  Implementations own
// any internal tracking state carried between consecutive frames.
type Detector interface {
	// Detect analyzes an RGB ordered frame and returns the detected body
	// landmarks, or nil when no person was detected.
	Detect(rgb gocv.Mat) (*LandmarkSet, error)

	// Close releases any resources held by the detector
	Close() error
}

// Config holds the landmark model configuration, fixed at construction time
type Config struct {
	// DetectionConfidence is the minimum confidence (0.0-1.0) for the
	// model to report a new pose detection
	DetectionConfidence float64
	// TrackingConfidence is the minimum confidence (0.0-1.0) for the
	// model to keep reporting a pose it is already tracking
	TrackingConfidence float64
	// ModelComplexity selects the lite, full, or heavy model variant
	ModelComplexity int
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() Config {
	return Config{
		DetectionConfidence: 0.5,
		TrackingConfidence:  0.5,
		ModelComplexity:     ComplexityFull,
	}
}

// Validate checks the configuration values are within range.  It is run
// before any frame processing begins so an invalid value aborts the run
// up front rather than per frame.
func (c Config) Validate() error {

	if c.DetectionConfidence < 0 || c.DetectionConfidence > 1 {
		return fmt.Errorf("detection confidence %.2f out of range 0.0-1.0",
			c.DetectionConfidence)
	}

	if c.TrackingConfidence < 0 || c.TrackingConfidence > 1 {
		return fmt.Errorf("tracking confidence %.2f out of range 0.0-1.0",
			c.TrackingConfidence)
	}

	if c.ModelComplexity < ComplexityLite || c.ModelComplexity > ComplexityHeavy {
		return fmt.Errorf("model complexity %d out of range 0-2",
			c.ModelComplexity)
	}

	return nil
}
