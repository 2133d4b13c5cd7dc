package vec

// MapRange linearly maps v from [inMin, inMax] onto [outMin, outMax].
// Values outside the input range extrapolate; a degenerate input range
// yields outMin.
func MapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return (v-inMin)/(inMax-inMin)*(outMax-outMin) + outMin
}

// QuadOut is the quadratic ease-out curve t*(2-t).
func QuadOut(t float64) float64 {
	return -t * (t - 2)
}
