package main

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/objview/pkg/objmodel"
)

type modelDump struct {
	File      string         `yaml:"file"`
	Stats     objmodel.Stats `yaml:"stats"`
	Bounds    [2][3]float32  `yaml:"bounds,flow"`
	Materials []materialDump `yaml:"materials,omitempty"`
	Meshes    []meshDump     `yaml:"meshes"`
}

type materialDump struct {
	Name             string            `yaml:"name"`
	Ambient          [3]float32        `yaml:"ka,flow"`
	Diffuse          [3]float32        `yaml:"kd,flow"`
	Specular         [3]float32        `yaml:"ks,flow"`
	RefractionIndex  float32           `yaml:"ni"`
	Opacity          float32           `yaml:"d"`
	SpecularExponent float32           `yaml:"ns"`
	Textures         map[string]string `yaml:"textures,omitempty"`
}

type meshDump struct {
	Name      string `yaml:"name"`
	Material  string `yaml:"material,omitempty"`
	Vertices  int    `yaml:"vertices"`
	Triangles int    `yaml:"triangles"`
}

func rgb(v mgl32.Vec4) [3]float32 {
	return [3]float32{v[0], v[1], v[2]}
}

// bounds returns the bounding box of all meshes of m.
func bounds(m *objmodel.Model) (minB, maxB mgl32.Vec3) {
	for i := 0; i < m.MeshCount(); i++ {
		lo, hi := m.MeshByIndex(i).Bounds()
		if i == 0 {
			minB, maxB = lo, hi
			continue
		}
		for k := 0; k < 3; k++ {
			minB[k] = min(minB[k], lo[k])
			maxB[k] = max(maxB[k], hi[k])
		}
	}
	return minB, maxB
}

func buildDump(m *objmodel.Model) modelDump {
	minB, maxB := bounds(m)
	d := modelDump{
		File:   m.Filename(),
		Stats:  m.Stats(),
		Bounds: [2][3]float32{minB, maxB},
	}

	for i := 0; i < m.MaterialCount(); i++ {
		mat := m.MaterialByIndex(i)
		md := materialDump{
			Name:             mat.Name,
			Ambient:          rgb(mat.Ambient),
			Diffuse:          rgb(mat.Diffuse),
			Specular:         rgb(mat.Specular),
			RefractionIndex:  mat.RefractionIndex(),
			Opacity:          mat.Opacity(),
			SpecularExponent: mat.SpecularExponent(),
		}
		for slot := objmodel.TextureSlot(0); slot < objmodel.TextureSlotCount; slot++ {
			if name := mat.Texture(slot); name != "" {
				if md.Textures == nil {
					md.Textures = make(map[string]string)
				}
				md.Textures[slot.String()] = name
			}
		}
		d.Materials = append(d.Materials, md)
	}

	for i := 0; i < m.MeshCount(); i++ {
		mesh := m.MeshByIndex(i)
		md := meshDump{
			Name:      mesh.Name,
			Vertices:  len(mesh.Vertices),
			Triangles: mesh.TriangleCount(),
		}
		if mat := m.MeshMaterial(mesh); mat != nil {
			md.Material = mat.Name
		}
		d.Meshes = append(d.Meshes, md)
	}
	return d
}

// writeDump encodes m as YAML.
func writeDump(w io.Writer, m *objmodel.Model) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(buildDump(m)); err != nil {
		return err
	}
	return enc.Close()
}
