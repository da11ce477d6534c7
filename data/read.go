package data

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/skn123/GenSVM/errors"
)

// maxTokenSize bounds a single input line. Lines are read through a
// bufio.Scanner with a grown buffer, so this is a safety limit rather than a
// fixed-size parse buffer.
const maxTokenSize = 16 * 1024 * 1024

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxTokenSize)
	return sc
}

// ReadDense reads a dense dataset. The first non-empty line holds the sample
// and feature counts; each following line holds the features of one sample,
// with an optional trailing integer label. Either every row carries a label
// or none does.
func ReadDense(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening data file %s", path)
	}
	defer f.Close()

	ds, err := readDense(f)
	return ds, errors.WrapfOrNil(err, "error reading data file %s", path)
}

func readDense(r io.Reader) (*Dataset, error) {
	sc := newLineScanner(r)

	header, err := nextFields(sc)
	if err != nil {
		return nil, err
	}
	if len(header) != 2 {
		return nil, errors.Errorf("expected header \"n m\", got %d fields", len(header))
	}
	n, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, errors.Wrapf(err, "bad sample count %q", header[0])
	}
	m, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, errors.Wrapf(err, "bad feature count %q", header[1])
	}
	if n < 1 || m < 1 {
		return nil, errors.Errorf("dataset dimensions must be positive, got %d x %d", n, m)
	}

	ds := &Dataset{N: n, M: m, X: make([]float64, n*m)}
	labeled := -1 // undecided until the first row
	for i := 0; i < n; i++ {
		fields, err := nextFields(sc)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i+1)
		}
		hasLabel := 0
		switch len(fields) {
		case m:
		case m + 1:
			hasLabel = 1
		default:
			return nil, errors.Errorf("row %d has %d fields, expected %d or %d", i+1, len(fields), m, m+1)
		}
		if labeled == -1 {
			labeled = hasLabel
			if hasLabel == 1 {
				ds.Y = make([]int, n)
			}
		} else if labeled != hasLabel {
			return nil, errors.Errorf("row %d mixes labeled and unlabeled rows", i+1)
		}

		for j := 0; j < m; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d field %d", i+1, j+1)
			}
			ds.X[i*m+j] = v
		}
		if hasLabel == 1 {
			y, err := strconv.Atoi(fields[m])
			if err != nil {
				return nil, errors.Wrapf(err, "row %d label", i+1)
			}
			ds.Y[i] = y
		}
	}
	return ds, nil
}

// ReadLibSVM reads a dataset in LibSVM/SVMlight format into sparse CSR form.
// Each line is "label idx:val idx:val ..." with 1-based, increasing feature
// indices; a line whose first token contains a colon is an unlabeled sample.
// Either every line carries a label or none does.
func ReadLibSVM(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening data file %s", path)
	}
	defer f.Close()

	ds, err := readLibSVM(f)
	return ds, errors.WrapfOrNil(err, "error reading data file %s", path)
}

func readLibSVM(r io.Reader) (*Dataset, error) {
	sp := &CSR{RowPtr: []int{0}}
	var labels []int
	labeled := -1

	sc := newLineScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		hasLabel := 0
		if !strings.Contains(fields[0], ":") {
			hasLabel = 1
		}
		if labeled == -1 {
			labeled = hasLabel
		} else if labeled != hasLabel {
			return nil, errors.Errorf("line %d mixes labeled and unlabeled rows", line)
		}
		if hasLabel == 1 {
			y, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d label", line)
			}
			labels = append(labels, y)
			fields = fields[1:]
		}

		prev := 0
		for _, tok := range fields {
			colon := strings.IndexByte(tok, ':')
			if colon < 0 {
				return nil, errors.Errorf("line %d: expected idx:value, got %q", line, tok)
			}
			idx, err := strconv.Atoi(tok[:colon])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d feature index", line)
			}
			if idx < 1 || idx <= prev {
				return nil, errors.Errorf("line %d: feature indices must be increasing and 1-based, got %d", line, idx)
			}
			prev = idx
			val, err := strconv.ParseFloat(tok[colon+1:], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d feature value", line)
			}
			sp.ColIdx = append(sp.ColIdx, idx-1)
			sp.Vals = append(sp.Vals, val)
			if idx > sp.Cols {
				sp.Cols = idx
			}
		}
		sp.Rows++
		sp.RowPtr = append(sp.RowPtr, len(sp.Vals))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if sp.Rows == 0 {
		return nil, errors.Errorf("no samples found")
	}

	ds := &Dataset{Sparse: sp, N: sp.Rows, M: sp.Cols}
	if labeled == 1 {
		ds.Y = labels
	}
	return ds, nil
}

func nextFields(sc *bufio.Scanner) ([]string, error) {
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) > 0 {
			return fields, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, errors.Errorf("unexpected end of file")
}
