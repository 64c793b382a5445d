package common

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// MapRange linearly re-maps v from [inLo, inHi] onto [outLo, outHi]. The
// result is not clamped, so values outside the input range extrapolate.
func MapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	return outLo + (v-inLo)/(inHi-inLo)*(outHi-outLo)
}

// MapClamped is MapRange with the result limited to the output range. The
// output range may be descending.
func MapClamped(v, inLo, inHi, outLo, outHi float64) float64 {
	mapped := MapRange(v, inLo, inHi, outLo, outHi)
	if outLo < outHi {
		return Clamp(mapped, outLo, outHi)
	}
	return Clamp(mapped, outHi, outLo)
}

// Lerp moves prev toward target by rate. This is the exponential smoothing
// step used for every smoothed quantity in the pipeline.
func Lerp(prev, target, rate float64) float64 {
	return prev + (target-prev)*rate
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// PopStdDev returns the population standard deviation (divides by n), or 0
// for an empty slice.
func PopStdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	_, std := stat.PopMeanStdDev(data, nil)
	if math.IsNaN(std) {
		return 0.0
	}
	return std
}

// SafeDiv returns num/den, or 0 when den is 0.
func SafeDiv(num, den float64) float64 {
	if den == 0 {
		return 0.0
	}
	return num / den
}
