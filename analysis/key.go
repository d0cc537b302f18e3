// Package analysis derives the key and time labels shown above the notation.
package analysis

import (
	"fmt"
	"math"

	"github.com/jsphweid/jianpu/model"
)

// Krumhansl-Kessler major key profile, index 0 is the tonic
var majorProfile = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}

var tonicNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}

var quartersByKind = map[model.DurationKind]float64{
	model.Whole:     4,
	model.Half:      2,
	model.Quarter:   1,
	model.Eighth:    0.5,
	model.Sixteenth: 0.25,
}

// Histogram sums the length in quarters of every note per pitch class.
func Histogram(score model.Score) [12]float64 {
	var hist [12]float64
	for _, hand := range score.Hands {
		for _, measure := range hand {
			for _, event := range measure {
				for _, n := range event.Notes {
					if n.Pitch.Class < 0 || n.Pitch.Class > 11 {
						continue
					}
					hist[n.Pitch.Class] += Quarters(n.Duration)
				}
			}
		}
	}
	return hist
}

func Quarters(d model.Duration) float64 {
	base := quartersByKind[d.Kind]
	total := base
	for i := 1; i <= d.Dots; i++ {
		total += base / math.Pow(2, float64(i))
	}
	return total
}

// DetectKey returns the tonic pitch class of the major key that correlates
// best with the score. A score without notes is in C.
func DetectKey(score model.Score) int {
	hist := Histogram(score)

	best := 0
	bestScore := math.Inf(-1)
	for tonic := 0; tonic < 12; tonic++ {
		var rotated [12]float64
		for i := range rotated {
			rotated[i] = hist[(tonic+i)%12]
		}
		if r := correlate(rotated, majorProfile); r > bestScore {
			best = tonic
			bestScore = r
		}
	}
	return best
}

func correlate(a [12]float64, b [12]float64) float64 {
	var meanA, meanB float64
	for i := range a {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= 12
	meanB /= 12

	var cov, varA, varB float64
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		return 0
	}
	return cov / math.Sqrt(varA*varB)
}

func TonicName(tonic int) string {
	return tonicNames[((tonic%12)+12)%12]
}

func KeyLabel(tonic int) string {
	return "1=" + TonicName(tonic)
}

func TimeLabel(meter model.Meter) string {
	return fmt.Sprintf("%d/%d", meter.Num, meter.Den)
}

// Label fills in the key and time labels of score.
func Label(score model.Score, meter model.Meter) model.Score {
	score.Key = KeyLabel(DetectKey(score))
	score.Time = TimeLabel(meter)
	return score
}
