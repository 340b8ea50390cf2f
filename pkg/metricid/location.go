package metricid

// Layout describes the flow-cell geometry needed to place a tile.
type Layout struct {
	Method          NamingMethod
	SectionsPerLane int
	TileCount       int // tiles per swath
	SwathCount      int
}

// PhysicalRow returns the 0-based row of the tile on the flow cell.
//
// Five-digit sections 4 and 6 are swapped to mirror the camera layout.
// Unknown naming methods place every tile on row 0.
func PhysicalRow(tile int, method NamingMethod, sectionsPerLane, tileCount int) int {
	switch method {
	case FiveDigit:
		section := ((tile % 1000) - (tile % 100)) / 100
		switch section {
		case 4:
			section = 6
		case 6:
			section = 4
		}
		section = (section - 1) * sectionsPerLane
		return clampZero(section*tileCount + tile%100 - 1)
	case FourDigit:
		return clampZero(tile%100 - 1)
	case Absolute:
		return clampZero(tile - 1)
	default:
		return 0
	}
}

// PhysicalColumn returns the 0-based column of the tile on the flow cell.
// When allSurfaces is set, surface 2 is drawn to the right of surface 1.
func PhysicalColumn(tile int, method NamingMethod, swathCount int, allSurfaces bool) int {
	if method != FiveDigit && method != FourDigit {
		return 0
	}
	col := Swath(tile, method)
	if allSurfaces && Surface(tile, method) == 2 {
		col += swathCount
	}
	return clampZero(col - 1)
}

// Row places the tile using the layout.
func (l Layout) Row(tile int) int {
	return PhysicalRow(tile, l.Method, l.SectionsPerLane, l.TileCount)
}

// Column places the tile using the layout.
func (l Layout) Column(tile int, allSurfaces bool) int {
	return PhysicalColumn(tile, l.Method, l.SwathCount, allSurfaces)
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
