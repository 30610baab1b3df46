package pose

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

const (
	// landmarkInputSize is the width and height of the landmark model
	// input tensor
	landmarkInputSize = 256
	// rawLandmarks is the number of landmarks in the model's raw output.
	// The first 33 are the body landmarks, the remainder are auxiliary
	// points used internally by the tracking pipeline.
	rawLandmarks = 39
	// rawStride is the number of values per raw landmark: x, y, z,
	// visibility and presence
	rawStride = 5
)

// output tensor names of the ONNX exported landmark model
var landmarkOutputNames = []string{"Identity", "Identity_1"}

// DNNDetector runs a BlazePose landmark model through the OpenCV DNN
// backend.  It keeps track of whether a pose was reported on the previous
// frame so the tracking confidence threshold can be applied to continued
// detections and the detection confidence threshold to new ones.
type DNNDetector struct {
	net gocv.Net
	cfg Config
	// tracking records whether a pose was detected on the previous frame
	tracking bool
}

// NewDNNDetector loads the landmark model from the given ONNX file and
// returns a detector configured with the supplied thresholds
func NewDNNDetector(modelFile string, cfg Config) (*DNNDetector, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	net := gocv.ReadNetFromONNX(modelFile)

	if net.Empty() {
		return nil, fmt.Errorf("error loading model file %s", modelFile)
	}

	return &DNNDetector{
		net: net,
		cfg: cfg,
	}, nil
}

// Detect runs landmark inference on an RGB ordered frame.  It returns nil
// when the model's pose presence score falls below the active confidence
// threshold, meaning no person was detected this frame.
func (d *DNNDetector) Detect(rgb gocv.Mat) (*LandmarkSet, error) {

	if rgb.Empty() {
		return nil, fmt.Errorf("cannot run inference on empty frame")
	}

	// scale pixel values to 0.0-1.0 and resize to the input tensor size
	blob := gocv.BlobFromImage(rgb, 1.0/255.0,
		image.Pt(landmarkInputSize, landmarkInputSize),
		gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	d.net.SetInput(blob, "")

	outputs := d.net.ForwardLayers(landmarkOutputNames)

	if len(outputs) != len(landmarkOutputNames) {
		return nil, fmt.Errorf("model returned %d output tensors, want %d",
			len(outputs), len(landmarkOutputNames))
	}

	defer func() {
		for i := range outputs {
			outputs[i].Close()
		}
	}()

	// a pose already being tracked only needs to clear the tracking
	// threshold to keep being reported
	threshold := d.cfg.DetectionConfidence
	if d.tracking {
		threshold = d.cfg.TrackingConfidence
	}

	score := float64(outputs[1].GetFloatAt(0, 0))

	if score < threshold {
		d.tracking = false
		return nil, nil
	}

	d.tracking = true

	return decodeLandmarks(outputs[0]), nil
}

// Close releases the model resources
func (d *DNNDetector) Close() error {
	return d.net.Close()
}

// decodeLandmarks converts the raw landmark tensor to a LandmarkSet.
// Coordinates are emitted by the model in input tensor pixels, so they are
// normalized by the tensor size.  Visibility is a logit and passed through
// a sigmoid.
func decodeLandmarks(out gocv.Mat) *LandmarkSet {

	set := NewLandmarkSet()

	for i := 0; i < NumLandmarks; i++ {
		base := i * rawStride

		set.Put(Landmark{
			Index:      i,
			X:          float64(out.GetFloatAt(0, base)) / landmarkInputSize,
			Y:          float64(out.GetFloatAt(0, base+1)) / landmarkInputSize,
			Z:          float64(out.GetFloatAt(0, base+2)) / landmarkInputSize,
			Visibility: sigmoid(float64(out.GetFloatAt(0, base+3))),
		})
	}

	return set
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
