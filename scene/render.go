package scene

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/fauxgl"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"

	"github.com/matt-g-everett/rdtools/sequence"
	"github.com/matt-g-everett/rdtools/util"
)

// Renderer draws the visible meshes of a scene with their materials, from a
// perspective camera on the +z side of the scene looking back at its centre.
type Renderer struct {
	Width       int
	Height      int
	Background  colorful.Color
	FieldOfView float64
	// Light points from the scene towards the light.
	Light [3]float64
}

// NewRenderer creates a Renderer for images of the given size.
func NewRenderer(width, height int) *Renderer {
	r := new(Renderer)
	r.Width = width
	r.Height = height
	r.Background = colorful.Color{R: 0, G: 0, B: 0.02}
	r.FieldOfView = 30
	r.Light = [3]float64{-0.75, 1, 0.25}
	return r
}

// Render draws the visible meshes. The camera frames every mesh, hidden or
// not, so that it holds still while the sequence plays.
func (r *Renderer) Render(meshes []*Mesh) image.Image {
	ctx := fauxgl.NewContext(r.Width, r.Height)
	ctx.ClearColorBufferWith(toColor(r.Background, 1))

	lo, hi, ok := bounds(meshes)
	if !ok {
		return ctx.Image()
	}

	center := lo.Add(hi).MulScalar(0.5)
	radius := math.Max(hi.Sub(lo).Length()/2, 1e-6)
	distance := radius / math.Sin(r.FieldOfView/2*math.Pi/180)
	eye := center.Add(fauxgl.V(0, 0, distance))
	aspect := float64(r.Width) / float64(r.Height)
	matrix := fauxgl.LookAt(eye, center, fauxgl.V(0, 1, 0)).
		Perspective(r.FieldOfView, aspect, distance/100, distance+2*radius)
	light := fauxgl.V(r.Light[0], r.Light[1], r.Light[2]).Normalize()

	for _, m := range meshes {
		if m.Hidden() || m.Triangles() == 0 {
			continue
		}
		material := m.Material
		if material == nil {
			material = NewMaterial("")
		}

		shader := fauxgl.NewPhongShader(matrix, light, eye)
		shader.ObjectColor = toColor(material.Diffuse, material.Opacity)
		shader.DiffuseColor = fauxgl.Gray(0.9)
		shader.SpecularColor = toColor(material.Specular, 1)
		shader.SpecularPower = material.Shininess
		ctx.Shader = shader
		ctx.DrawMesh(m.Geometry)
	}
	return ctx.Image()
}

// bounds returns the box around every mesh with triangles.
func bounds(meshes []*Mesh) (lo, hi fauxgl.Vector, ok bool) {
	for _, m := range meshes {
		if m.Triangles() == 0 {
			continue
		}
		mlo, mhi := m.Bounds()
		if !ok {
			lo, hi, ok = mlo, mhi, true
			continue
		}
		lo = fauxgl.V(math.Min(lo.X, mlo.X), math.Min(lo.Y, mlo.Y), math.Min(lo.Z, mlo.Z))
		hi = fauxgl.V(math.Max(hi.X, mhi.X), math.Max(hi.Y, mhi.Y), math.Max(hi.Z, mhi.Z))
	}
	return lo, hi, ok
}

func toColor(c colorful.Color, alpha float64) fauxgl.Color {
	c = c.Clamped()
	return fauxgl.Color{R: c.R, G: c.G, B: c.B, A: alpha}
}

// FrameWriter renders the scene to a numbered PNG every time the timeline
// moves to a frame.
type FrameWriter struct {
	renderer   *Renderer
	scene      *Scene
	outDir     string
	nameFormat string
	log        logrus.FieldLogger

	written []string
	err     error
}

// NewFrameWriter creates a FrameWriter that writes into outDir, naming each
// image with nameFormat and the frame number.
func NewFrameWriter(r *Renderer, s *Scene, outDir, nameFormat string, log logrus.FieldLogger) (*FrameWriter, error) {
	if err := util.CheckNameFormat(nameFormat); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	w := new(FrameWriter)
	w.renderer = r
	w.scene = s
	w.outDir = outDir
	w.nameFormat = nameFormat
	w.log = log
	return w, nil
}

// Attach writes a frame on every frame change of tl until the returned
// function is called.
func (w *FrameWriter) Attach(tl *sequence.Timeline) (detach func()) {
	return tl.Register(func(frame int) {
		if err := w.WriteFrame(frame); err != nil {
			w.log.WithError(err).WithField("frame", frame).Error("writing frame")
			if w.err == nil {
				w.err = err
			}
		}
	})
}

// WriteFrame renders the scene as it stands and writes it as frame.
func (w *FrameWriter) WriteFrame(frame int) error {
	path := filepath.Join(w.outDir, fmt.Sprintf(w.nameFormat, frame))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, w.renderer.Render(w.scene.Meshes())); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	w.written = append(w.written, path)
	w.log.WithFields(logrus.Fields{
		"frame": frame,
		"image": path,
	}).Debug("wrote frame")
	return nil
}

// Written returns the paths written so far.
func (w *FrameWriter) Written() []string {
	return w.written
}

// Err returns the first error met while attached to a timeline.
func (w *FrameWriter) Err() error {
	return w.err
}
