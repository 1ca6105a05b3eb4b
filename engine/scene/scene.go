package scene

import (
	"github.com/Carmen-Shannon/oxy-shadows/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadows/engine/light"
	"github.com/Carmen-Shannon/oxy-shadows/engine/mesh"
	"github.com/Carmen-Shannon/oxy-shadows/engine/object"
	"github.com/google/uuid"
)

// Scene defines the root container passed to the renderer each frame.
//
// A Scene holds objects in insertion order: lights, meshes, camera helpers,
// cameras, and bare transform nodes such as light targets. Typed accessors filter
// that list. Scene mutation happens on the loop goroutine only.
type Scene interface {
	// Name returns the scene name.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// SetName sets the scene name.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// Active returns whether the scene should be rendered.
	//
	// Returns:
	//   - bool: true if active
	Active() bool

	// SetActive sets whether the scene should be rendered.
	//
	// Parameters:
	//   - active: true to render
	SetActive(active bool)

	// Camera returns the scene's default camera, or nil.
	//
	// Returns:
	//   - camera.Camera: the default camera
	Camera() camera.Camera

	// SetCamera sets the default camera. The camera is also added to the scene.
	//
	// Parameters:
	//   - cam: the camera
	SetCamera(cam camera.Camera)

	// Add inserts objects. Nil objects and objects already present are skipped.
	//
	// Parameters:
	//   - objects: the objects to add
	Add(objects ...object.Object)

	// Get returns the object with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - object.Object: the object or nil
	Get(id uuid.UUID) object.Object

	// Remove deletes the object with the given ID. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the object ID
	Remove(id uuid.UUID)

	// Count returns the number of objects in the scene.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Objects returns every object in insertion order.
	//
	// Returns:
	//   - []object.Object: a copy of the object list
	Objects() []object.Object

	// Lights returns the lights in insertion order.
	//
	// Returns:
	//   - []light.Light: the lights
	Lights() []light.Light

	// Meshes returns the meshes in insertion order.
	//
	// Returns:
	//   - []mesh.Mesh: the meshes
	Meshes() []mesh.Mesh

	// Helpers returns the camera helpers in insertion order.
	//
	// Returns:
	//   - []light.CameraHelper: the helpers
	Helpers() []light.CameraHelper
}

type scene struct {
	name   string
	active bool
	camera camera.Camera

	objects []object.Object
	index   map[uuid.UUID]int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates an active, empty Scene with the given options applied.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		name:   "scene",
		active: true,
		index:  make(map[uuid.UUID]int),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) SetName(name string) {
	s.name = name
}

func (s *scene) Active() bool {
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.camera
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.camera = cam
	if cam != nil {
		s.Add(cam)
	}
}

func (s *scene) Add(objects ...object.Object) {
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		if _, ok := s.index[obj.ID()]; ok {
			continue
		}
		s.index[obj.ID()] = len(s.objects)
		s.objects = append(s.objects, obj)
	}
}

func (s *scene) Get(id uuid.UUID) object.Object {
	if i, ok := s.index[id]; ok {
		return s.objects[i]
	}
	return nil
}

func (s *scene) Remove(id uuid.UUID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.objects); j++ {
		s.index[s.objects[j].ID()] = j
	}
	if s.camera != nil && s.camera.ID() == id {
		s.camera = nil
	}
}

func (s *scene) Count() int {
	return len(s.objects)
}

func (s *scene) Objects() []object.Object {
	out := make([]object.Object, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *scene) Lights() []light.Light {
	return collect[light.Light](s.objects)
}

func (s *scene) Meshes() []mesh.Mesh {
	return collect[mesh.Mesh](s.objects)
}

func (s *scene) Helpers() []light.CameraHelper {
	return collect[light.CameraHelper](s.objects)
}

// collect filters objects by their concrete interface.
func collect[T object.Object](objects []object.Object) []T {
	var out []T
	for _, obj := range objects {
		if v, ok := obj.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
