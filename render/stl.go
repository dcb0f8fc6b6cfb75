package render

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"github.com/coredump/keycap-legends/mesher"
	"gonum.org/v1/gonum/spatial/r3"
)

// WriteSTL writes the mesh to w in binary STL format.
func WriteSTL(w io.Writer, m mesher.Mesh) error {
	if len(m.Triangles) == 0 {
		return errors.New("empty mesh")
	}
	header := stlHeader{
		Count: uint32(len(m.Triangles)),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var d stlTriangle
	for _, tri := range m.Triangles {
		var b [50]byte
		v1 := m.Vertices[tri[0]]
		v2 := m.Vertices[tri[1]]
		v3 := m.Vertices[tri[2]]
		n := triangleNormal(v1, v2, v3)
		d.Normal = toF32(n)
		d.Vertex1 = toF32(v1)
		d.Vertex2 = toF32(v2)
		d.Vertex3 = toF32(v3)
		d.put(b[:])
		if _, err := io.Copy(w, bytes.NewReader(b[:])); err != nil {
			return err
		}
	}
	return nil
}

// CreateSTL writes the mesh to a binary STL file at path.
func CreateSTL(path string, m mesher.Mesh) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	return WriteSTL(fp, m)
}

// ReadSTL reads a binary STL stream into a triangle soup: three vertices
// per triangle with sequential indices. The soup duplicates every shared
// vertex, which the weld stage of the repair pipeline resolves.
func ReadSTL(r io.Reader) ([]r3.Vec, [][3]int, error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, nil, errors.New("STL header read failed: " + err.Error())
	}
	if header.Count == 0 {
		return nil, nil, errors.New("STL header indicates 0 triangles present")
	}
	verts := make([]r3.Vec, 0, 3*header.Count)
	tris := make([][3]int, 0, header.Count)
	var (
		buf [50]byte
		d   stlTriangle
	)
	for i := 0; i < int(header.Count); i++ {
		var n int
		for n < 50 {
			nr, err := r.Read(buf[n:])
			if err != nil {
				return nil, nil, fmt.Errorf("%d/%d STL triangles read: %w", i, header.Count, err)
			}
			n += nr
		}
		d.get(buf[:])
		if bad3F32(d.Vertex1) || bad3F32(d.Vertex2) || bad3F32(d.Vertex3) {
			return nil, nil, fmt.Errorf("inf/NaN vertex in STL triangle %d", i)
		}
		base := len(verts)
		verts = append(verts, fromF32(d.Vertex1), fromF32(d.Vertex2), fromF32(d.Vertex3))
		tris = append(tris, [3]int{base, base + 1, base + 2})
	}
	return verts, tris, nil
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func (t stlTriangle) put(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// no attributes supported yet.
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func toF32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func fromF32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func triangleNormal(v1, v2, v3 r3.Vec) r3.Vec {
	n := r3.Cross(r3.Sub(v2, v1), r3.Sub(v3, v1))
	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}
