package simulate

import "math"

// round rounds v to the given number of decimal places, matching the
// stable column widths documented for table output (adherence 3dp,
// sleep/stress 1dp, weight 2dp, etc.).
func round(v float64, places int) float64 {
	mult := math.Pow(10, float64(places))
	return math.Round(v*mult) / mult
}
