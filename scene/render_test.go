package scene

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/rdtools/sequence"
	"github.com/matt-g-everett/rdtools/util"
)

func loadQuads(t *testing.T, n int) *Scene {
	dir := t.TempDir()
	for i := 0; i < n; i++ {
		writeFile(t, dir, fmt.Sprintf("frame_%02d.obj", i), quadOBJ)
	}
	s := NewScene()
	_, err := s.Load(filepath.Join(dir, "*.obj"), "sim")
	require.NoError(t, err)
	return s
}

func centre(img image.Image) color.Color {
	b := img.Bounds()
	return img.At(b.Dx()/2, b.Dy()/2)
}

func TestRenderMaterial(t *testing.T) {
	s := loadQuads(t, 1)
	require.NoError(t, s.Material("sim").SetDiffuseHex("#ff0000"))

	r := NewRenderer(32, 32)
	img := r.Render(s.Meshes())
	assert.Equal(t, 32, img.Bounds().Dx())

	red, green, blue, _ := centre(img).RGBA()
	assert.Greater(t, red, green)
	assert.Greater(t, red, blue)

	s.Meshes()[0].SetHidden(true)
	bg := toColor(r.Background, 1).NRGBA()
	assert.Equal(t, bg, centre(r.Render(s.Meshes())))
}

func TestRenderNothing(t *testing.T) {
	r := NewRenderer(8, 4)
	img := r.Render(nil)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
}

func TestFrameWriter(t *testing.T) {
	s := loadQuads(t, 2)
	a, err := sequence.NewAssignment(s.Objects())
	require.NoError(t, err)
	tl := sequence.NewTimeline(0, 0)
	detach, err := sequence.Follow(tl, a)
	require.NoError(t, err)
	defer detach()

	log := logrus.New()
	log.SetOutput(io.Discard)
	out := filepath.Join(t.TempDir(), "preview")
	w, err := NewFrameWriter(NewRenderer(16, 16), s, out, "preview_%03d.png", log)
	require.NoError(t, err)
	defer w.Attach(tl)()

	start, end := tl.Range()
	for f := start; f <= end; f++ {
		tl.SetFrame(f)
	}
	require.NoError(t, w.Err())
	assert.Equal(t, []string{
		filepath.Join(out, "preview_000.png"),
		filepath.Join(out, "preview_001.png"),
	}, w.Written())
	for _, p := range w.Written() {
		assert.FileExists(t, p)
	}
}

func TestFrameWriterNameFormat(t *testing.T) {
	_, err := NewFrameWriter(NewRenderer(4, 4), NewScene(), t.TempDir(), "preview.png", logrus.New())
	assert.ErrorIs(t, err, util.ErrNameFormat)
}
