package render

import "image/color"

var (
	// jointColor is the fixed color drawn at skeleton joints
	jointColor = color.RGBA{G: 255, A: 255}

	// boneColor is the fixed color for the lines drawn between
	// connected joints
	boneColor = color.RGBA{B: 255, A: 255}
)

const (
	// boneThickness is the line thickness for skeleton bones
	boneThickness = 2
	// jointRadius is the circle radius for skeleton joints
	jointRadius = 3
	// jointThickness is the circle outline thickness for skeleton joints
	jointThickness = 2
)
