package pose

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Renderer draws the filtered landmarks and their eligible skeleton
// connections onto a frame in place
type Renderer interface {
	Draw(img *gocv.Mat, set *LandmarkSet, conns []Connection)
}

// Pipeline sequences frames from a source through detection, filtering and
// rendering, then emits them to the sink and optional preview.  Processing
// is synchronous with exactly one frame in flight; the next frame is not
// read until the current one has been emitted.
type Pipeline struct {
	// Detector is the pose landmark model, constructed once and owning
	// its own tracking state across frames
	Detector Detector
	// Policy selects which landmarks are rendered
	Policy FilterPolicy
	// Renderer draws the skeleton overlay
	Renderer Renderer
	// Sink receives every processed frame in input order.  Optional for
	// preview only runs.
	Sink FrameSink
	// Preview displays processed frames and supplies the quit signal.
	// Optional.
	Preview PreviewSurface
	// Progress, when set, is called after each frame is emitted with the
	// count of frames processed so far
	Progress func(frame int)
}

// Run processes frames until the source is exhausted, the preview raises a
// quit signal, or a fatal error occurs.  On error the frames already
// written to the sink are preserved.  The returned stats reflect the
// frames processed before the run ended.
func (p *Pipeline) Run(src FrameSource) (*RunStats, error) {

	stats := NewRunStats()

	img := gocv.NewMat()
	defer img.Close()

	rgb := gocv.NewMat()
	defer rgb.Close()

	for frameNum := 0; ; frameNum++ {

		if ok := src.Next(&img); !ok {
			// reached last video frame
			break
		}

		if img.Empty() {
			return stats, fmt.Errorf("frame %d failed to decode", frameNum)
		}

		// the landmark model expects RGB ordered pixels, video frames
		// arrive BGR ordered
		gocv.CvtColor(img, &rgb, gocv.ColorBGRToRGB)

		set, err := p.Detector.Detect(rgb)

		if err != nil {
			return stats, fmt.Errorf("detection failed on frame %d: %w",
				frameNum, err)
		}

		// draw the skeleton only when a person was detected, otherwise
		// the frame passes through unannotated
		if set != nil {
			filtered := set.Filter(p.Policy)
			p.Renderer.Draw(&img, filtered, EligibleConnections(filtered))
			stats.recordDetection(filtered)
		}

		stats.recordFrame()

		if p.Sink != nil {
			if err := p.Sink.Write(img); err != nil {
				return stats, fmt.Errorf("error writing frame %d: %w",
					frameNum, err)
			}
		}

		if p.Preview != nil {
			p.Preview.Display(img)
		}

		if p.Progress != nil {
			p.Progress(frameNum + 1)
		}

		// quit is polled once per frame after emission, so a signal
		// raised on frame N leaves exactly N frames written
		if p.Preview != nil && p.Preview.QuitRequested() {
			break
		}
	}

	return stats, nil
}
