package pose

import "gonum.org/v1/gonum/stat"

// RunStats accumulates counters over one pipeline run
type RunStats struct {
	// FramesProcessed is the number of frames read from the source
	FramesProcessed int
	// FramesDetected is the number of frames in which a pose was detected
	FramesDetected int
	// visibility collects the per landmark visibility of every rendered
	// landmark for the end of run summary
	visibility []float64
}

// NewRunStats returns an empty RunStats
func NewRunStats() *RunStats {
	return &RunStats{
		visibility: make([]float64, 0),
	}
}

// recordFrame counts a processed frame
func (r *RunStats) recordFrame() {
	r.FramesProcessed++
}

// recordDetection counts a detected frame and samples the visibility of
// the landmarks that passed the filter
func (r *RunStats) recordDetection(filtered *LandmarkSet) {

	r.FramesDetected++

	for _, i := range filtered.Indices() {
		lm, _ := filtered.Get(i)
		r.visibility = append(r.visibility, lm.Visibility)
	}
}

// DetectionRate returns the fraction of processed frames with a detected
// pose
func (r *RunStats) DetectionRate() float64 {
	if r.FramesProcessed == 0 {
		return 0
	}
	return float64(r.FramesDetected) / float64(r.FramesProcessed)
}

// MeanVisibility returns the mean visibility score across all rendered
// landmarks of the run
func (r *RunStats) MeanVisibility() float64 {
	if len(r.visibility) == 0 {
		return 0
	}
	return stat.Mean(r.visibility, nil)
}
