package pose

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

// fakeSource serves prebuilt frames, optionally delivering an undecodable
// (empty) frame at index badFrame
type fakeSource struct {
	frames   []gocv.Mat
	pos      int
	badFrame int
}

func newFakeSource(tags ...float64) *fakeSource {

	src := &fakeSource{badFrame: -1}

	for _, tag := range tags {
		src.frames = append(src.frames, gocv.NewMatWithSizeFromScalar(
			gocv.NewScalar(tag, 0, 0, 0), 32, 32, gocv.MatTypeCV8UC3))
	}

	return src
}

func (f *fakeSource) Next(img *gocv.Mat) bool {

	if f.pos >= len(f.frames) {
		return false
	}

	if f.pos == f.badFrame {
		f.pos++
		*img = gocv.NewMat()
		return true
	}

	f.frames[f.pos].CopyTo(img)
	f.pos++

	return true
}

func (f *fakeSource) Close() error {
	for i := range f.frames {
		f.frames[i].Close()
	}
	return nil
}

// fakeSink records a copy of every frame written to it
type fakeSink struct {
	written  []gocv.Mat
	failFrom int
}

func newFakeSink() *fakeSink {
	return &fakeSink{failFrom: -1}
}

func (f *fakeSink) Write(img gocv.Mat) error {

	if f.failFrom >= 0 && len(f.written) >= f.failFrom {
		return errors.New("disk full")
	}

	f.written = append(f.written, img.Clone())
	return nil
}

func (f *fakeSink) Close() error {
	for i := range f.written {
		f.written[i].Close()
	}
	return nil
}

// fakeDetector returns a scripted landmark set per frame
type fakeDetector struct {
	sets  []*LandmarkSet
	errs  []error
	calls int
}

func (f *fakeDetector) Detect(rgb gocv.Mat) (*LandmarkSet, error) {

	call := f.calls
	f.calls++

	var err error
	if call < len(f.errs) {
		err = f.errs[call]
	}

	if call < len(f.sets) {
		return f.sets[call], err
	}

	return nil, err
}

func (f *fakeDetector) Close() error {
	return nil
}

// fakePreview raises the quit signal once quitAfter frames were displayed
type fakePreview struct {
	quitAfter int
	shown     int
}

func (f *fakePreview) Display(img gocv.Mat) {
	f.shown++
}

func (f *fakePreview) QuitRequested() bool {
	return f.quitAfter > 0 && f.shown >= f.quitAfter
}

func (f *fakePreview) Close() error {
	return nil
}

// stubRenderer marks a corner of the frame so rendered frames are
// distinguishable from pass through frames
type stubRenderer struct {
	draws int
}

func (r *stubRenderer) Draw(img *gocv.Mat, set *LandmarkSet, conns []Connection) {
	r.draws++
	gocv.Rectangle(img, image.Rect(0, 0, 4, 4), color.RGBA{R: 255, A: 255}, -1)
}

func TestRunEmitsAllFramesInOrder(t *testing.T) {

	src := newFakeSource(10, 20, 30)
	defer src.Close()

	sink := newFakeSink()
	defer sink.Close()

	pipeline := &Pipeline{
		Detector: &fakeDetector{},
		Policy:   ExcludeFace,
		Renderer: &stubRenderer{},
		Sink:     sink,
	}

	stats, err := pipeline.Run(src)

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(sink.written) != 3 {
		t.Fatalf("Expected 3 frames written, got %d", len(sink.written))
	}

	// emission order equals input order, and with no detections each
	// frame passes through pixel identical
	for i := range sink.written {
		tag := sink.written[i].GetVecbAt(0, 0)[0]

		if int(tag) != (i+1)*10 {
			t.Errorf("Frame %d out of order: expected tag %d, got %d",
				i, (i+1)*10, tag)
		}

		if !bytes.Equal(sink.written[i].ToBytes(), src.frames[i].ToBytes()) {
			t.Errorf("Frame %d with no detection should be unannotated", i)
		}
	}

	if stats.FramesProcessed != 3 || stats.FramesDetected != 0 {
		t.Errorf("Expected 3 processed and 0 detected, got %d and %d",
			stats.FramesProcessed, stats.FramesDetected)
	}
}

func TestRunRendersDetectedFramesOnly(t *testing.T) {

	src := newFakeSource(10, 20)
	defer src.Close()

	sink := newFakeSink()
	defer sink.Close()

	renderer := &stubRenderer{}

	pipeline := &Pipeline{
		Detector: &fakeDetector{sets: []*LandmarkSet{fullSet(), nil}},
		Policy:   ExcludeFace,
		Renderer: renderer,
		Sink:     sink,
	}

	stats, err := pipeline.Run(src)

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(sink.written) != 2 {
		t.Fatalf("Expected 2 frames written, got %d", len(sink.written))
	}

	if bytes.Equal(sink.written[0].ToBytes(), src.frames[0].ToBytes()) {
		t.Error("Frame 0 had a detection and should have been annotated")
	}

	if !bytes.Equal(sink.written[1].ToBytes(), src.frames[1].ToBytes()) {
		t.Error("Frame 1 had no detection and should be pixel identical to its input")
	}

	if renderer.draws != 1 {
		t.Errorf("Renderer should run once, ran %d times", renderer.draws)
	}

	if stats.FramesProcessed != 2 || stats.FramesDetected != 1 {
		t.Errorf("Expected 2 processed and 1 detected, got %d and %d",
			stats.FramesProcessed, stats.FramesDetected)
	}
}

func TestRunQuitSignalStopsAfterEmit(t *testing.T) {

	src := newFakeSource(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	defer src.Close()

	sink := newFakeSink()
	defer sink.Close()

	preview := &fakePreview{quitAfter: 5}

	pipeline := &Pipeline{
		Detector: &fakeDetector{},
		Policy:   ExcludeFace,
		Renderer: &stubRenderer{},
		Sink:     sink,
		Preview:  preview,
	}

	stats, err := pipeline.Run(src)

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// quit is checked after emission so the frame that raised the signal
	// is still written
	if len(sink.written) != 5 {
		t.Errorf("Expected exactly 5 frames written before quit, got %d",
			len(sink.written))
	}

	if stats.FramesProcessed != 5 {
		t.Errorf("Expected 5 frames processed, got %d", stats.FramesProcessed)
	}
}

func TestRunDecodeFailureIsFatal(t *testing.T) {

	src := newFakeSource(10, 20, 30)
	src.badFrame = 2
	defer src.Close()

	sink := newFakeSink()
	defer sink.Close()

	pipeline := &Pipeline{
		Detector: &fakeDetector{},
		Policy:   ExcludeFace,
		Renderer: &stubRenderer{},
		Sink:     sink,
	}

	stats, err := pipeline.Run(src)

	if err == nil {
		t.Fatal("Expected a fatal error for the undecodable frame")
	}

	// frames written before the failure are preserved
	if len(sink.written) != 2 {
		t.Errorf("Expected 2 frames preserved, got %d", len(sink.written))
	}

	if stats.FramesProcessed != 2 {
		t.Errorf("Expected 2 frames processed, got %d", stats.FramesProcessed)
	}
}

func TestRunDetectorErrorIsFatal(t *testing.T) {

	src := newFakeSource(10)
	defer src.Close()

	sink := newFakeSink()
	defer sink.Close()

	pipeline := &Pipeline{
		Detector: &fakeDetector{errs: []error{errors.New("inference failed")}},
		Policy:   ExcludeFace,
		Renderer: &stubRenderer{},
		Sink:     sink,
	}

	if _, err := pipeline.Run(src); err == nil {
		t.Fatal("Expected detector error to abort the run")
	}

	if len(sink.written) != 0 {
		t.Errorf("No frames should be written after a detector error, got %d",
			len(sink.written))
	}
}

func TestRunSinkErrorIsFatal(t *testing.T) {

	src := newFakeSource(10, 20, 30)
	defer src.Close()

	sink := newFakeSink()
	sink.failFrom = 1
	defer sink.Close()

	pipeline := &Pipeline{
		Detector: &fakeDetector{},
		Policy:   ExcludeFace,
		Renderer: &stubRenderer{},
		Sink:     sink,
	}

	if _, err := pipeline.Run(src); err == nil {
		t.Fatal("Expected sink write error to abort the run")
	}

	if len(sink.written) != 1 {
		t.Errorf("Expected 1 frame preserved before sink failure, got %d",
			len(sink.written))
	}
}
