package render

import (
	"bytes"
	"testing"

	"github.com/coredump/keycap-legends/brep"
	"github.com/coredump/keycap-legends/mesher"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSTLWriteReadback(t *testing.T) {
	box := brep.Box(r3.Vec{X: 2, Y: 1, Z: 1})
	mesh, _, err := mesher.Repair(box, mesher.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	var b bytes.Buffer
	if err := WriteSTL(&b, mesh); err != nil {
		t.Fatal(err)
	}
	verts, tris, err := ReadSTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != len(mesh.Triangles) {
		t.Fatalf("read %d triangles, wrote %d", len(tris), len(mesh.Triangles))
	}
	if len(verts) != 3*len(tris) {
		t.Fatalf("soup has %d vertices, want 3 per triangle", len(verts))
	}

	// Welding the soup recovers the deduplicated mesh.
	welded, _ := mesher.Weld(verts, 1e-6)
	if len(welded) != len(mesh.Vertices) {
		t.Errorf("welded soup to %d vertices, want %d", len(welded), len(mesh.Vertices))
	}
}

func TestWriteSTLEmptyMesh(t *testing.T) {
	var b bytes.Buffer
	if err := WriteSTL(&b, mesher.Mesh{}); err == nil {
		t.Error("expected error for empty mesh")
	}
}

func TestReadSTLEmptyHeader(t *testing.T) {
	b := bytes.NewBuffer(make([]byte, 84))
	if _, _, err := ReadSTL(b); err == nil {
		t.Error("expected error for zero-triangle STL")
	}
}
