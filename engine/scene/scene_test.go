package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shadows/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadows/engine/geometry"
	"github.com/Carmen-Shannon/oxy-shadows/engine/light"
	"github.com/Carmen-Shannon/oxy-shadows/engine/mesh"
	"github.com/Carmen-Shannon/oxy-shadows/engine/object"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/material"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene()
	assert.True(t, s.Active())
	assert.Zero(t, s.Count())
	assert.Nil(t, s.Camera())

	s = NewScene(WithName("shadows"), WithActive(false))
	assert.Equal(t, "shadows", s.Name())
	assert.False(t, s.Active())
}

func TestAddAndTypedAccessors(t *testing.T) {
	dir := light.NewLight(light.LightTypeDirectional)
	amb := light.NewLight(light.LightTypeAmbient)
	helper := light.NewCameraHelper(dir)
	sphere := mesh.NewMesh(geometry.Sphere(0.5, 8, 8), material.NewStandardMaterial())
	target := object.New("target")

	s := NewScene()
	s.Add(amb, dir, helper, sphere, target, nil)

	assert.Equal(t, 5, s.Count())
	assert.Len(t, s.Lights(), 2)
	assert.Len(t, s.Meshes(), 1)
	assert.Len(t, s.Helpers(), 1)
	assert.Equal(t, amb, s.Lights()[0])
	assert.Equal(t, target, s.Get(target.ID()))
}

func TestAddSkipsDuplicates(t *testing.T) {
	l := light.NewLight(light.LightTypePoint)
	s := NewScene()
	s.Add(l, l)
	s.Add(l)
	assert.Equal(t, 1, s.Count())
}

func TestRemoveReindexes(t *testing.T) {
	a, b, c := object.New("a"), object.New("b"), object.New("c")
	s := NewScene(WithObjects(a, b, c))

	s.Remove(b.ID())
	s.Remove(uuid.New())
	assert.Equal(t, 2, s.Count())
	assert.Nil(t, s.Get(b.ID()))
	assert.Equal(t, c, s.Get(c.ID()))
	assert.Equal(t, []object.Object{a, c}, s.Objects())
}

func TestCameraIsAddedToScene(t *testing.T) {
	cam := camera.NewCamera()
	s := NewScene(WithCamera(cam))
	assert.Equal(t, cam, s.Camera())
	assert.Equal(t, 1, s.Count())

	s.Remove(cam.ID())
	assert.Nil(t, s.Camera())
}

func TestObjectsReturnsCopy(t *testing.T) {
	s := NewScene(WithObjects(object.New("a")))
	objs := s.Objects()
	objs[0] = nil
	assert.NotNil(t, s.Objects()[0])
}
