package scene

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matt-g-everett/rdtools/sequence"
)

// Scene owns the imported meshes and their materials.
type Scene struct {
	meshes    []*Mesh
	materials map[string]*Material
}

// NewScene creates an empty Scene.
func NewScene() *Scene {
	s := new(Scene)
	s.materials = make(map[string]*Material)
	return s
}

// Material returns the material called name, creating it if needed.
func (s *Scene) Material(name string) *Material {
	m, found := s.materials[name]
	if !found {
		m = NewMaterial(name)
		s.materials[name] = m
	}
	return m
}

// Meshes returns the meshes added to the scene, in the order they were added.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// Objects returns the meshes as sequence objects.
func (s *Scene) Objects() []sequence.Object {
	objects := make([]sequence.Object, len(s.meshes))
	for i, m := range s.meshes {
		objects[i] = m
	}
	return objects
}

// Add puts a mesh into the scene.
func (s *Scene) Add(m *Mesh) {
	s.meshes = append(s.meshes, m)
}

// Import decodes the mesh file at path. The mesh is named after the file and
// is not added to the scene.
func Import(path string) (*Mesh, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, found := Decoders[ext]
	if !found {
		return nil, fmt.Errorf("%s: no decoder for %q files", path, ext)
	}

	geometry, err := decode(dec, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if geometry == nil || len(geometry.Triangles) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTriangles)
	}

	m := NewMesh(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), geometry)
	m.Source = path
	return m, nil
}

// Match returns the files matching pattern in lexicographic order.
func Match(pattern string) ([]string, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// Load imports every file matching pattern in lexicographic order, gives each
// mesh the named material and adds them to the scene. The scene is left
// untouched if nothing matches or any file fails to import.
func (s *Scene) Load(pattern, material string) ([]*Mesh, error) {
	paths, err := Match(pattern)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no files match %q", sequence.ErrEmptyInputSet, pattern)
	}

	meshes := make([]*Mesh, 0, len(paths))
	for _, p := range paths {
		m, err := Import(p)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, m)
	}

	mat := s.Material(material)
	for _, m := range meshes {
		m.Material = mat
		s.Add(m)
	}
	return meshes, nil
}
