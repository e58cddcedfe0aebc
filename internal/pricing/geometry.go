package pricing

// Ceiling height bands offered to the client.
const (
	CeilingLow      = "Low (< 2.4m)"
	CeilingStandard = "Standard (2.4 - 2.7m)"
	CeilingHigh     = "High (2.7 - 3.0m)"
	CeilingVeryHigh = "Very High (> 3.0m)"
)

const (
	// OpeningsFraction is the share of gross wall area lost to doors and windows.
	OpeningsFraction = 0.10
	// FallbackCeilingHeight is used when a ceiling selection matches no band.
	FallbackCeilingHeight = 2.60
)

var ceilingHeights = map[string]float64{
	CeilingLow:      2.30,
	CeilingStandard: 2.55,
	CeilingHigh:     2.85,
	CeilingVeryHigh: 3.20,
}

// CeilingBands lists the selectable ceiling bands, lowest first.
func CeilingBands() []string {
	return []string{CeilingLow, CeilingStandard, CeilingHigh, CeilingVeryHigh}
}

// CeilingHeight resolves a band selection to metres. An empty selection means
// the standard band.
func CeilingHeight(band string) float64 {
	if band == "" {
		band = CeilingStandard
	}
	if h, ok := ceilingHeights[band]; ok {
		return h
	}
	return FallbackCeilingHeight
}

// Dimensions derives the measures every quantity formula works from.
func Dimensions(room RoomInput) RoomDimensions {
	floorArea := Round2(room.Width * room.Length)
	perimeter := Round2(2 * (room.Width + room.Length))
	height := CeilingHeight(room.CeilingHeight)
	grossWall := perimeter * height

	return RoomDimensions{
		FloorArea:     floorArea,
		Perimeter:     perimeter,
		CeilingHeight: height,
		WallArea:      Round2(grossWall * (1 - OpeningsFraction)),
		CeilingArea:   floorArea,
	}
}
