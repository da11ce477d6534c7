package grid

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/skn123/GenSVM/diag"
	"github.com/skn123/GenSVM/errors"
)

// ReadFile parses the grid file at path. Warnings about skipped fields go to
// log; structural problems are returned as an error.
func ReadFile(path string, log diag.Interface) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening grid file %s", path)
	}
	defer f.Close()

	g, err := Read(f, log)
	return g, errors.WrapfOrNil(err, "error reading grid file %s", path)
}

// Read parses a grid specification from r. Each line holds a "key:" prefix
// followed by a path, a kernel token, or a whitespace-separated numeric list.
// Unknown keys and inapplicable kernel parameters are skipped with a warning.
// The kernel line must come before the gamma, coef and degree lines, since
// their applicability depends on the kernel family already being known.
func Read(r io.Reader, log diag.Interface) (*Grid, error) {
	g := Default()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := g.parseLine(line, log); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return g, nil
}

func (g *Grid) parseLine(line string, log diag.Interface) error {
	key, rest, ok := splitKey(line)
	if !ok {
		log.Warnf("cannot find any parameters on line: %s", line)
		return nil
	}

	var err error
	switch key {
	case "train":
		g.TrainFile = rest
	case "test":
		g.TestFile = rest
	case "p":
		g.Ps, err = parseFloats(rest, key)
	case "lambda":
		g.Lambdas, err = parseFloats(rest, key)
	case "kappa":
		g.Kappas, err = parseFloats(rest, key)
	case "epsilon":
		g.Epsilons, err = parseFloats(rest, key)
	case "weight":
		g.WeightIdxs, err = parseInts(rest, key)
	case "folds":
		g.Folds, err = parseSingleInt(rest, key, log)
	case "repeats":
		g.Repeats, err = parseSingleInt(rest, key, log)
	case "percentile":
		g.Percentile, err = parseSingleFloat(rest, key, log)
	case "kernel":
		g.Kernel, err = ParseKernel(rest)
	case "gamma":
		if !g.Kernel.UsesGamma() {
			log.Warnf("field \"gamma\" ignored, linear kernel is used")
			g.Gammas = nil
			return nil
		}
		g.Gammas, err = parseFloats(rest, key)
	case "coef":
		if !g.Kernel.UsesCoef() {
			log.Warnf("field \"coef\" ignored with specified kernel")
			g.Coefs = nil
			return nil
		}
		g.Coefs, err = parseFloats(rest, key)
	case "degree":
		if !g.Kernel.UsesDegree() {
			log.Warnf("field \"degree\" ignored with specified kernel")
			g.Degrees = nil
			return nil
		}
		g.Degrees, err = parseFloats(rest, key)
	default:
		log.Warnf("cannot find any parameters on line: %s", line)
	}
	return err
}

func splitKey(line string) (key, rest string, ok bool) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return "", "", false
	}
	return line[:colon], strings.TrimSpace(line[colon+1:]), true
}

func parseFloats(rest, key string) ([]float64, error) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, errors.Errorf("no values on field %q", key)
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value %q for field %q", f, key)
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(rest, key string) ([]int, error) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, errors.Errorf("no values on field %q", key)
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value %q for field %q", f, key)
		}
		out[i] = v
	}
	return out, nil
}

func parseSingleInt(rest, key string, log diag.Interface) (int, error) {
	vals, err := parseInts(rest, key)
	if err != nil {
		return 0, err
	}
	if len(vals) > 1 {
		log.Warnf("field %q only takes one value, additional values are ignored", key)
	}
	return vals[0], nil
}

func parseSingleFloat(rest, key string, log diag.Interface) (float64, error) {
	vals, err := parseFloats(rest, key)
	if err != nil {
		return 0, err
	}
	if len(vals) > 1 {
		log.Warnf("field %q only takes one value, additional values are ignored", key)
	}
	return vals[0], nil
}
