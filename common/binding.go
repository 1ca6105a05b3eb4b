package common

import "github.com/go-gl/mathgl/mgl32"

// FloatBinding is a getter/setter pair addressing a single float property.
type FloatBinding struct {
	Get func() float32
	Set func(float32)
}

// BoolBinding is a getter/setter pair addressing a single boolean property.
type BoolBinding struct {
	Get func() bool
	Set func(bool)
}

// FloatProperties is implemented by objects that expose float properties by path,
// such as "intensity" or "position.x".
type FloatProperties interface {
	// FloatProperty resolves a property path to a binding.
	//
	// Parameters:
	//   - path: the property path
	//
	// Returns:
	//   - FloatBinding: the resolved binding
	//   - bool: false if the object has no such property
	FloatProperty(path string) (FloatBinding, bool)
}

// BoolProperties is implemented by objects that expose boolean properties by path,
// such as "visible".
type BoolProperties interface {
	// BoolProperty resolves a property path to a binding.
	//
	// Parameters:
	//   - path: the property path
	//
	// Returns:
	//   - BoolBinding: the resolved binding
	//   - bool: false if the object has no such property
	BoolProperty(path string) (BoolBinding, bool)
}

// Vec3Property resolves "<prefix>.x", "<prefix>.y" and "<prefix>.z" paths against a
// vector accessor pair. Used by objects exposing position-like properties.
func Vec3Property(path, prefix string, get func() mgl32.Vec3, set func(mgl32.Vec3)) (FloatBinding, bool) {
	if len(path) != len(prefix)+2 || path[:len(prefix)] != prefix || path[len(prefix)] != '.' {
		return FloatBinding{}, false
	}
	var idx int
	switch path[len(prefix)+1] {
	case 'x':
		idx = 0
	case 'y':
		idx = 1
	case 'z':
		idx = 2
	default:
		return FloatBinding{}, false
	}
	return FloatBinding{
		Get: func() float32 { return get()[idx] },
		Set: func(v float32) {
			cur := get()
			cur[idx] = v
			set(cur)
		},
	}, true
}
