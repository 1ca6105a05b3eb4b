package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sphere builds a UV sphere centered at the origin.
//
// Rows run from the north pole (+Y) to the south pole; columns run around the Y
// axis. The pole rows emit a single triangle per column so no degenerate
// triangles are produced. The UV seam vertices at the poles are offset by half a
// column so the texture does not pinch.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: number of columns, at least 3
//   - heightSegments: number of rows, at least 2
//
// Returns:
//   - *Geometry: the sphere geometry
func Sphere(radius float32, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(3, widthSegments)
	heightSegments = max(2, heightSegments)

	vertices := make([]Vertex, 0, (widthSegments+1)*(heightSegments+1))
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(widthSegments)
		case heightSegments:
			uOffset = -0.5 / float32(widthSegments)
		}

		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			sinTheta := math32.Sin(v * math32.Pi)
			pos := mgl32.Vec3{
				-radius * math32.Cos(u*2*math32.Pi) * sinTheta,
				radius * math32.Cos(v*math32.Pi),
				radius * math32.Sin(u*2*math32.Pi) * sinTheta,
			}
			normal := mgl32.Vec3{0, 1, 0}
			if pos.Len() > 0 {
				normal = pos.Normalize()
			}
			if iy == heightSegments {
				normal = mgl32.Vec3{0, -1, 0}
			}
			row[ix] = uint32(len(vertices))
			vertices = append(vertices, Vertex{
				Position: pos,
				Normal:   normal,
				UV:       mgl32.Vec2{u + uOffset, 1 - v},
			})
		}
		grid[iy] = row
	}

	indices := make([]uint32, 0, widthSegments*(heightSegments-1)*6)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}
	return New("sphere", vertices, indices)
}
