package train

import "math"

// simplex returns the K x (K-1) matrix whose rows are the vertices of a
// regular simplex centered at the origin, one vertex per class. Row j is the
// encoding of class j+1.
func simplex(k int) [][]float64 {
	u := make([][]float64, k)
	for i := range u {
		u[i] = make([]float64, k-1)
		for j := 0; j < k-1; j++ {
			d := math.Sqrt(2.0 * float64(j+1) * float64(j+2))
			switch {
			case i <= j:
				u[i][j] = -1.0 / d
			case i == j+1:
				u[i][j] = float64(j+1) / d
			}
		}
	}
	return u
}
