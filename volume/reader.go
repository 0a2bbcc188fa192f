package volume

import (
	"bufio"
	"fmt"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrNotFinite is returned for a NaN or infinite sample.
var ErrNotFinite = errors.New("sample is not a finite number")

// Read parses a legacy ASCII VTK file holding a STRUCTURED_POINTS dataset.
// Only the first component of the first SCALARS array is kept.
func Read(r io.Reader) (*Grid, error) {
	br := bufio.NewReader(r)
	header := make([]string, 3)
	for i := range header {
		line, err := br.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, fmt.Errorf("volume: reading header: %w", err)
		}
		header[i] = strings.TrimSpace(line)
	}
	if !strings.HasPrefix(header[0], "# vtk DataFile") {
		return nil, fmt.Errorf("volume: not a VTK file")
	}
	if !strings.EqualFold(header[2], "ASCII") {
		return nil, fmt.Errorf("volume: only ASCII files are supported, got %q", header[2])
	}

	tr := newTokenReader(br)
	g := new(Grid)
	g.Spacing = [3]float64{1, 1, 1}
	var points int
	for {
		word, err := tr.word()
		if err == io.EOF {
			return nil, fmt.Errorf("volume: no SCALARS data")
		}
		if err != nil {
			return nil, err
		}

		switch strings.ToUpper(word) {
		case "DATASET":
			kind, err := tr.word()
			if err != nil {
				return nil, err
			}
			if !strings.EqualFold(kind, "STRUCTURED_POINTS") {
				return nil, fmt.Errorf("volume: unsupported dataset %q", kind)
			}
		case "DIMENSIONS":
			for i := range g.Dims {
				if g.Dims[i], err = tr.integer(); err != nil {
					return nil, err
				}
			}
		case "ORIGIN":
			if g.Origin, err = tr.vec3(); err != nil {
				return nil, err
			}
		case "SPACING", "ASPECT_RATIO":
			if g.Spacing, err = tr.vec3(); err != nil {
				return nil, err
			}
		case "POINT_DATA":
			if points, err = tr.integer(); err != nil {
				return nil, err
			}
		case "SCALARS":
			return readScalars(tr, g, points)
		}
	}
}

func readScalars(tr *tokenReader, g *Grid, points int) (*Grid, error) {
	n := g.Dims[0] * g.Dims[1] * g.Dims[2]
	if n <= 0 {
		return nil, fmt.Errorf("volume: bad dimensions %v", g.Dims)
	}
	for _, s := range g.Spacing {
		if !(s > 0) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("volume: bad spacing %v", g.Spacing)
		}
	}
	if points != n {
		return nil, fmt.Errorf("volume: POINT_DATA %d does not match dimensions %v", points, g.Dims)
	}

	// The line is "SCALARS name type [numComp]".
	line, err := tr.rest()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, fmt.Errorf("volume: malformed SCALARS line %q", line)
	}
	g.Name = fields[0]
	components := 1
	if len(fields) > 2 {
		if components, err = strconv.Atoi(fields[2]); err != nil || components < 1 {
			return nil, fmt.Errorf("volume: bad component count %q", fields[2])
		}
	}

	word, err := tr.word()
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(word, "LOOKUP_TABLE") {
		if _, err = tr.word(); err != nil {
			return nil, err
		}
	} else {
		tr.unread(word)
	}

	g.Values = make([]float64, n)
	for i := 0; i < n; i++ {
		for c := 0; c < components; c++ {
			v, err := tr.number()
			if err != nil {
				return nil, fmt.Errorf("volume: sample %d: %w", i, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("volume: sample %d: %w", i, ErrNotFinite)
			}
			if c == 0 {
				g.Values[i] = v
			}
		}
	}
	return g, nil
}

// ReadFile reads the snapshot at path.
func ReadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

type tokenReader struct {
	r       *bufio.Reader
	pending []string
}

func newTokenReader(r *bufio.Reader) *tokenReader {
	return &tokenReader{r: r}
}

func (t *tokenReader) unread(word string) {
	t.pending = append(t.pending, word)
}

// rest returns the remainder of the current line.
func (t *tokenReader) rest() (string, error) {
	line, err := t.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (t *tokenReader) word() (string, error) {
	if n := len(t.pending); n > 0 {
		w := t.pending[n-1]
		t.pending = t.pending[:n-1]
		return w, nil
	}

	var sb strings.Builder
	for {
		b, err := t.r.ReadByte()
		if err == io.EOF {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			if sb.Len() > 0 {
				if b == '\n' {
					t.r.UnreadByte()
				}
				return sb.String(), nil
			}
			continue
		}
		sb.WriteByte(b)
	}
}

func (t *tokenReader) integer() (int, error) {
	w, err := t.word()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(w)
}

func (t *tokenReader) number() (float64, error) {
	w, err := t.word()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(w, 64)
}

func (t *tokenReader) vec3() ([3]float64, error) {
	var v [3]float64
	for i := range v {
		f, err := t.number()
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}
