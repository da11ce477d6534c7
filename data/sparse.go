package data

// CSR is a compressed sparse row matrix. RowPtr has n+1 entries; the nonzero
// values of row i live in Vals[RowPtr[i]:RowPtr[i+1]] with column indices in
// ColIdx at the same positions.
type CSR struct {
	Rows   int
	Cols   int
	RowPtr []int
	ColIdx []int
	Vals   []float64
}

// At returns the value at (i, j).
func (s *CSR) At(i, j int) float64 {
	for k := s.RowPtr[i]; k < s.RowPtr[i+1]; k++ {
		if s.ColIdx[k] == j {
			return s.Vals[k]
		}
	}
	return 0
}

// NNZ returns the number of stored nonzeros.
func (s *CSR) NNZ() int {
	return len(s.Vals)
}

func (s *CSR) scatterRow(i int, dst []float64) {
	for j := range dst {
		dst[j] = 0
	}
	for k := s.RowPtr[i]; k < s.RowPtr[i+1]; k++ {
		dst[s.ColIdx[k]] = s.Vals[k]
	}
}

// Dense returns the dense row-major form of the matrix.
func (s *CSR) Dense() []float64 {
	out := make([]float64, s.Rows*s.Cols)
	for i := 0; i < s.Rows; i++ {
		for k := s.RowPtr[i]; k < s.RowPtr[i+1]; k++ {
			out[i*s.Cols+s.ColIdx[k]] = s.Vals[k]
		}
	}
	return out
}
