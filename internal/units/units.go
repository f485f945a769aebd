// Package units converts physical measurements into the integer units used by
// WordprocessingML: twips (1/20 pt) for distances and half-points for font sizes.
package units

const (
	TwipsPerCm         = 567
	TwipsPerInch       = 1440
	TwipsPerPoint      = 20
	HalfPointsPerPoint = 2

	// TwipsPerLine is the line pitch of single spacing under lineRule="auto".
	TwipsPerLine = 240

	// EighthsPerPoint is the border width unit (w:sz on w:top, w:insideH, ...).
	EighthsPerPoint = 8
)

// All conversions truncate toward zero. Callers must not assume rounding.

// CmToTwips converts centimeters to twips.
func CmToTwips(cm float64) int {
	return int(cm * TwipsPerCm)
}

// InchesToTwips converts inches to twips.
func InchesToTwips(in float64) int {
	return int(in * TwipsPerInch)
}

// PointsToTwips converts points to twips.
func PointsToTwips(pt float64) int {
	return int(pt * TwipsPerPoint)
}

// PointsToHalfPoints converts a font size in points to the w:sz unit.
func PointsToHalfPoints(pt float64) int {
	return int(pt * HalfPointsPerPoint)
}

// LineSpacingToTwips converts a line-spacing ratio (1.0 = single) to the
// w:spacing/@w:line value used with lineRule="auto".
func LineSpacingToTwips(ratio float64) int {
	return int(ratio * TwipsPerLine)
}

// PointsToEighths converts a border width in points to eighths of a point.
func PointsToEighths(pt float64) int {
	return int(pt * EighthsPerPoint)
}
