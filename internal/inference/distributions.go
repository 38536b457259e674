package inference

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// TwoTailedTPValue returns P(|T| ≥ |t|) for Student's t with df degrees of freedom
func TwoTailedTPValue(t, df float64) float64 {
	if math.IsNaN(t) || !(df > 0) {
		return math.NaN()
	}
	if math.IsInf(t, 0) {
		return 0
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return math.Min(1, 2*tDist.Survival(math.Abs(t)))
}

// FPValue returns the upper-tail probability of the F distribution
func FPValue(f float64, df1, df2 float64) float64 {
	if math.IsNaN(f) || !(df1 > 0) || !(df2 > 0) {
		return math.NaN()
	}
	if math.IsInf(f, 1) {
		return 0
	}
	fDist := distuv.F{D1: df1, D2: df2}
	return fDist.Survival(f)
}

// ChiSquarePValue returns the upper-tail probability of the chi-square distribution
func ChiSquarePValue(chi2 float64, df float64) float64 {
	if math.IsNaN(chi2) || !(df > 0) {
		return math.NaN()
	}
	chiDist := distuv.ChiSquared{K: df}
	return chiDist.Survival(chi2)
}

// NormalCritical returns the two-sided critical z for a confidence level
func NormalCritical(level float64) float64 {
	alpha := 1 - level
	return distuv.UnitNormal.Quantile(1 - alpha/2)
}
