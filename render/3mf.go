// Package render exports repaired meshes to manufacturing file formats.
package render

import (
	"errors"
	"fmt"

	"github.com/coredump/keycap-legends/mesher"
	"github.com/hpinc/go3mf"
)

// Part is a named mesh exported as one object of a 3MF model.
type Part struct {
	Name string
	Mesh mesher.Mesh
}

// Create3MF writes the parts as objects of a single 3MF model in
// millimetres. Parts keep their order; every part becomes one build item.
func Create3MF(path string, parts ...Part) error {
	model, err := buildModel(parts)
	if err != nil {
		return err
	}
	w, err := go3mf.CreateWriter(path)
	if err != nil {
		return err
	}
	if err := w.Encode(model); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func buildModel(parts []Part) (*go3mf.Model, error) {
	if len(parts) == 0 {
		return nil, errors.New("no parts to export")
	}
	model := new(go3mf.Model)
	model.Units = go3mf.UnitMillimeter
	for i, p := range parts {
		if len(p.Mesh.Triangles) == 0 {
			return nil, fmt.Errorf("part %q has no triangles", p.Name)
		}
		obj := &go3mf.Object{
			ID:   uint32(i + 1),
			Name: p.Name,
			Mesh: new(go3mf.Mesh),
		}
		for _, v := range p.Mesh.Vertices {
			obj.Mesh.Vertices.Vertex = append(obj.Mesh.Vertices.Vertex,
				go3mf.Point3D{float32(v.X), float32(v.Y), float32(v.Z)})
		}
		for _, t := range p.Mesh.Triangles {
			if t[0] >= len(p.Mesh.Vertices) || t[1] >= len(p.Mesh.Vertices) || t[2] >= len(p.Mesh.Vertices) {
				return nil, fmt.Errorf("part %q: triangle %v references a missing vertex", p.Name, t)
			}
			obj.Mesh.Triangles.Triangle = append(obj.Mesh.Triangles.Triangle,
				go3mf.Triangle{V1: uint32(t[0]), V2: uint32(t[1]), V3: uint32(t[2])})
		}
		model.Resources.Objects = append(model.Resources.Objects, obj)
		model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: obj.ID})
	}
	return model, nil
}
