package volume

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/matt-g-everett/rdtools/sequence"
	"github.com/matt-g-everett/rdtools/util"
)

// DefaultNameFormat names the rendered frames.
const DefaultNameFormat = "frame_%04d.png"

// RenderSequence renders every snapshot matching pattern, in lexicographic
// order, to a PNG in outDir named by nameFormat and the frame index. It
// returns the written paths. Nothing is written when no snapshot matches.
func (r *Renderer) RenderSequence(pattern, outDir, nameFormat string, log logrus.FieldLogger) ([]string, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no snapshots match %q", sequence.ErrEmptyInputSet, pattern)
	}
	sort.Strings(paths)

	if nameFormat == "" {
		nameFormat = DefaultNameFormat
	}
	if err := util.CheckNameFormat(nameFormat); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(paths))
	for i, p := range paths {
		g, err := ReadFile(p)
		if err != nil {
			return written, err
		}

		out := filepath.Join(outDir, fmt.Sprintf(nameFormat, i))
		if err := r.writePNG(g, out); err != nil {
			return written, err
		}
		written = append(written, out)

		min, max := g.Range()
		log.WithFields(logrus.Fields{
			"frame":    i,
			"snapshot": p,
			"image":    out,
			"min":      min,
			"max":      max,
		}).Debug("rendered frame")
	}
	return written, nil
}

func (r *Renderer) writePNG(g *Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, r.Render(g)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
