package render

import (
	"errors"

	"github.com/coredump/keycap-legends/mesher"
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
)

// SavePreviewPNG renders the meshes to a shaded PNG at the given size.
// The combined model is fit into a bi-unit cube and viewed isometrically.
func SavePreviewPNG(path string, width, height int, meshes ...mesher.Mesh) error {
	var triangles []*fauxgl.Triangle
	for _, m := range meshes {
		for _, t := range m.Triangles {
			a := m.Vertices[t[0]]
			b := m.Vertices[t[1]]
			c := m.Vertices[t[2]]
			triangles = append(triangles, fauxgl.NewTriangleForPoints(
				fauxgl.V(a.X, a.Y, a.Z),
				fauxgl.V(b.X, b.Y, b.Z),
				fauxgl.V(c.X, c.Y, c.Z),
			))
		}
	}
	if len(triangles) == 0 {
		return errors.New("nothing to preview")
	}
	mesh := fauxgl.NewTriangleMesh(triangles)

	const (
		scale = 2  // supersampling factor
		fovy  = 30 // vertical field of view in degrees
		near  = 1
		far   = 10
	)
	var (
		eye    = fauxgl.V(2.4, 2.4, 2.4)              // camera position
		center = fauxgl.V(0, 0, 0)                    // view center position
		up     = fauxgl.V(0, 0, 1)                    // up vector
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize() // light direction
		color  = fauxgl.HexColor("#468966")           // object color
	)

	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, near, far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(uint(width), uint(height), image, resize.Bilinear)
	return fauxgl.SavePNG(path, image)
}
