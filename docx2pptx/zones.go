package docx2pptx

// Zone is a fixed rectangular destination region, in inches.
type Zone struct {
	X, Y, W, H float64
}

// Bottom returns the zone's lower edge.
func (z Zone) Bottom() float64 {
	return z.Y + z.H
}

// ZoneSet holds the three destination regions of a slide.
type ZoneSet struct {
	Title    Zone
	Subtitle Zone
	Content  Zone
}

// pxToInch converts a pixel measurement to inches at 96 px/inch.
func pxToInch(px float64) float64 {
	return px / 96.0
}

// cmToInch converts centimeters to inches.
func cmToInch(cm float64) float64 {
	return cm / 2.54
}

// Shape floors to avoid degenerate boxes.
const (
	minZoneHeight = 0.5
	minContentH   = 1.0
)

// zoneWidth is the shared column width of the deck template.
var zoneWidth = cmToInch(30.33)

// DefaultZones returns the zones measured off the reference template.
// The title sits 0.4 inch below its nominal pixel position.
func DefaultZones() ZoneSet {
	return ZoneSet{
		Title: Zone{
			X: pxToInch(76),
			Y: pxToInch(35) + 0.4,
			W: zoneWidth,
			H: maxf(pxToInch(70), minZoneHeight),
		},
		Subtitle: Zone{
			X: pxToInch(76),
			Y: pxToInch(119),
			W: zoneWidth,
			H: maxf(pxToInch(56), minZoneHeight),
		},
		Content: Zone{
			X: pxToInch(76),
			Y: pxToInch(189),
			W: zoneWidth,
			H: maxf(pxToInch(425), minContentH),
		},
	}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
