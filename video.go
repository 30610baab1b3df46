package pose

import (
	"fmt"

	"gocv.io/x/gocv"
)

// FrameSource supplies video frames one at a time in stream order
type FrameSource interface {
	// Next reads the next frame into img, returning false at end of stream
	Next(img *gocv.Mat) bool
	Close() error
}

// FrameSink receives annotated frames, one write per input frame, in
// input order
type FrameSink interface {
	Write(img gocv.Mat) error
	Close() error
}

// PreviewSurface displays frames and reports the viewer's quit request
type PreviewSurface interface {
	Display(img gocv.Mat)
	// QuitRequested polls whether the viewer raised the quit signal.  It
	// is checked once per frame after the frame has been emitted.
	QuitRequested() bool
	Close() error
}

// VideoSource reads frames from a video file
type VideoSource struct {
	cap *gocv.VideoCapture
}

// OpenVideoSource opens the given video file for reading
func OpenVideoSource(file string) (*VideoSource, error) {

	cap, err := gocv.VideoCaptureFile(file)

	if err != nil {
		return nil, fmt.Errorf("error opening video %s: %w", file, err)
	}

	return &VideoSource{cap: cap}, nil
}

// Next reads the next frame from the video
func (v *VideoSource) Next(img *gocv.Mat) bool {
	return v.cap.Read(img)
}

// Width returns the frame width in pixels
func (v *VideoSource) Width() int {
	return int(v.cap.Get(gocv.VideoCaptureFrameWidth))
}

// Height returns the frame height in pixels
func (v *VideoSource) Height() int {
	return int(v.cap.Get(gocv.VideoCaptureFrameHeight))
}

// FPS returns the video frame rate
func (v *VideoSource) FPS() float64 {
	return v.cap.Get(gocv.VideoCaptureFPS)
}

// TotalFrames returns the number of frames in the video
func (v *VideoSource) TotalFrames() int {
	return int(v.cap.Get(gocv.VideoCaptureFrameCount))
}

// Close releases the video capture handle
func (v *VideoSource) Close() error {
	return v.cap.Close()
}

// VideoSink writes frames to an mp4 video file
type VideoSink struct {
	writer *gocv.VideoWriter
}

// NewVideoSink creates the output video file using the mp4v codec with the
// given frame rate and geometry
func NewVideoSink(file string, fps float64, width, height int) (*VideoSink, error) {

	writer, err := gocv.VideoWriterFile(file, "mp4v", fps, width, height, true)

	if err != nil {
		return nil, fmt.Errorf("error creating output video %s: %w", file, err)
	}

	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("error opening output video %s for writing", file)
	}

	return &VideoSink{writer: writer}, nil
}

// Write appends the frame to the output video
func (s *VideoSink) Write(img gocv.Mat) error {
	return s.writer.Write(img)
}

// Close finalizes the output video file
func (s *VideoSink) Close() error {
	return s.writer.Close()
}

// quitKey is the key that closes the preview window
const quitKey = 'q'

// Preview shows frames in a window as they are processed
type Preview struct {
	window *gocv.Window
}

// NewPreview opens a preview window with the given title
func NewPreview(title string) *Preview {
	return &Preview{
		window: gocv.NewWindow(title),
	}
}

// Display shows the frame in the preview window
func (p *Preview) Display(img gocv.Mat) {
	p.window.IMShow(img)
}

// QuitRequested pumps the window event loop and reports whether the quit
// key was pressed
func (p *Preview) QuitRequested() bool {
	return p.window.WaitKey(1) == quitKey
}

// Close destroys the preview window
func (p *Preview) Close() error {
	return p.window.Close()
}
