package render

import (
	"github.com/amacbride/pose-estimator"
	"gocv.io/x/gocv"
)

// Skeleton renders pose landmarks as a skeleton overlay with fixed colors
// and line weights
type Skeleton struct{}

// NewSkeleton returns a skeleton overlay renderer
func NewSkeleton() Skeleton {
	return Skeleton{}
}

// Draw renders the given landmarks and connections onto the frame in
// place.  Bones are drawn first and joints second so joint circles sit on
// top of the bone lines at shared endpoints.  A nil or empty landmark set
// leaves the frame untouched.  Off frame coordinates are clipped by the
// drawing primitives.
func (Skeleton) Draw(img *gocv.Mat, set *pose.LandmarkSet, conns []pose.Connection) {

	if set == nil {
		return
	}

	width := img.Cols()
	height := img.Rows()

	// draw skeleton bone lines
	for _, c := range conns {
		a, okA := set.Get(c.A)
		b, okB := set.Get(c.B)

		if !okA || !okB {
			continue
		}

		gocv.Line(img, a.Pixel(width, height), b.Pixel(width, height),
			boneColor, boneThickness)
	}

	// draw circles at skeleton joints
	for _, i := range set.Indices() {
		lm, _ := set.Get(i)

		gocv.Circle(img, lm.Pixel(width, height), jointRadius,
			jointColor, jointThickness)
	}
}
