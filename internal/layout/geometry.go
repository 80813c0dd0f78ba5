package layout

import (
	"fmt"

	"sharecut/internal/services"
)

// Region names.
const (
	RegionFull      = "full"
	RegionPrimary   = "primary"
	RegionSecondary = "secondary"
)

// Diagonal layout proportions.
const (
	diagonalSlidesPercent = 72
	diagonalCameraPercent = 30
	diagonalMargin        = 20
)

// Align controls how content that is aspect-fit into a region is positioned.
type Align string

const (
	// AlignCenter centres content on both axes.
	AlignCenter Align = "center"
	// AlignLeft pins content to the left edge and centres it vertically.
	AlignLeft Align = "left"
	// AlignTopLeft places content at the region origin. The region size is
	// only a layout estimate; the content keeps its own height.
	AlignTopLeft Align = "top-left"
)

// Region is a rectangle on the canvas plus its stacking order.
type Region struct {
	Name   string `json:"name" yaml:"name"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	X      int    `json:"x" yaml:"x"`
	Y      int    `json:"y" yaml:"y"`
	Z      int    `json:"z" yaml:"z"`
	Align  Align  `json:"align" yaml:"align"`
}

// Size returns the region's dimensions.
func (r Region) Size() Dimensions {
	return Dimensions{Width: r.Width, Height: r.Height}
}

// Geometry is the planned layout for one render.
type Geometry struct {
	Mode         Mode       `json:"mode" yaml:"mode"`
	Native       Dimensions `json:"native" yaml:"native"`
	Canvas       Dimensions `json:"canvas" yaml:"canvas"`
	ScaleSpeaker bool       `json:"scale_speaker" yaml:"scale_speaker"`
	Full         Region     `json:"full" yaml:"full"`
	Primary      Region     `json:"primary" yaml:"primary"`
	Secondary    Region     `json:"secondary" yaml:"secondary"`
}

// Regions returns the regions in stacking order.
func (g Geometry) Regions() []Region {
	return []Region{g.Full, g.Primary, g.Secondary}
}

// Request carries the inputs to Plan.
type Request struct {
	Mode Mode
	// Camera is the camera stream's native resolution.
	Camera Dimensions
	// Output is the explicit output size; the zero value keeps the camera's.
	Output Dimensions
}

// Plan computes the canvas and region geometry for the requested mode.
func Plan(req Request) (Geometry, error) {
	if !req.Camera.Valid() {
		return Geometry{}, services.Wrap(services.ErrConfiguration, "layout", "plan",
			fmt.Sprintf("camera resolution unavailable (%s)", req.Camera), nil)
	}
	canvas := req.Camera
	scale := false
	if !req.Output.IsZero() {
		if !req.Output.Valid() {
			return Geometry{}, services.Wrap(services.ErrConfiguration, "layout", "plan",
				fmt.Sprintf("invalid output size %s", req.Output), nil)
		}
		canvas = req.Output
		scale = req.Output != req.Camera
	}

	g := Geometry{
		Mode:         req.Mode,
		Native:       req.Camera,
		Canvas:       canvas,
		ScaleSpeaker: scale,
		Full:         Region{Name: RegionFull, Width: canvas.Width, Height: canvas.Height, Align: AlignCenter},
	}

	switch req.Mode {
	case ModeSideBySide:
		half := canvas.Width / 2
		g.Primary = Region{Name: RegionPrimary, Width: half, Height: canvas.Height, Z: 1, Align: AlignCenter}
		g.Secondary = Region{Name: RegionSecondary, Width: canvas.Width - half, Height: canvas.Height, X: half, Z: 2, Align: AlignCenter}
	case ModeDiagonal:
		slidesWidth := canvas.Width * diagonalSlidesPercent / 100
		cameraWidth := canvas.Width * diagonalCameraPercent / 100
		// The camera is assumed to be 4:3 when reserving its corner.
		cameraHeight := cameraWidth * 3 / 4
		g.Primary = Region{Name: RegionPrimary, Width: slidesWidth, Height: canvas.Height, Z: 1, Align: AlignLeft}
		g.Secondary = Region{
			Name:   RegionSecondary,
			Width:  cameraWidth,
			Height: cameraHeight,
			X:      canvas.Width - cameraWidth - diagonalMargin,
			Y:      canvas.Height - cameraHeight - diagonalMargin,
			Z:      2,
			Align:  AlignTopLeft,
		}
		if g.Primary.Width <= 0 || cameraWidth <= 0 || g.Secondary.X < 0 || g.Secondary.Y < 0 {
			return Geometry{}, services.Wrap(services.ErrConfiguration, "layout", "plan",
				fmt.Sprintf("canvas %s is too small for the diagonal layout", canvas), nil)
		}
	default:
		return Geometry{}, services.Wrap(services.ErrConfiguration, "layout", "plan",
			fmt.Sprintf("unknown layout %q", req.Mode), nil)
	}

	if g.Primary.Width <= 0 || g.Secondary.Width <= 0 {
		return Geometry{}, services.Wrap(services.ErrConfiguration, "layout", "plan",
			fmt.Sprintf("canvas %s is too narrow to split", canvas), nil)
	}
	return g, nil
}
