package objmodel

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// TextureSlot identifies one of the texture maps a material can reference.
type TextureSlot int

const (
	DiffuseTexture TextureSlot = iota
	SpecularTexture
	NormalTexture

	TextureSlotCount
)

// String returns the MTL-style name of the slot.
func (s TextureSlot) String() string {
	switch s {
	case DiffuseTexture:
		return "diffuse"
	case SpecularTexture:
		return "specular"
	case NormalTexture:
		return "normal"
	default:
		return fmt.Sprintf("TextureSlot(%d)", int(s))
	}
}

// Material holds the lighting properties of an MTL material.
//
// The alpha channels carry scalar properties, following common OBJ viewer
// convention: Ambient.W is the refraction index (Ni), Diffuse.W the opacity
// (d, or 1-Tr) and Specular.W the specular exponent (Ns).
type Material struct {
	Name     string
	Ambient  mgl32.Vec4 // Ka, W = Ni
	Diffuse  mgl32.Vec4 // Kd, W = d
	Specular mgl32.Vec4 // Ks, W = Ns

	// Texture file names, already prefixed with the model's base path.
	// Empty when the material does not use the slot.
	Textures [TextureSlotCount]string
}

// RefractionIndex returns the optical density (Ni).
func (m *Material) RefractionIndex() float32 { return m.Ambient[3] }

// Opacity returns the dissolve value (d).
func (m *Material) Opacity() float32 { return m.Diffuse[3] }

// SpecularExponent returns the shininess (Ns).
func (m *Material) SpecularExponent() float32 { return m.Specular[3] }

// Texture returns the file name bound to slot, or "".
func (m *Material) Texture(slot TextureSlot) string {
	if slot < 0 || slot >= TextureSlotCount {
		return ""
	}
	return m.Textures[slot]
}

// setColor replaces the RGB part of dst from data and keeps dst's alpha.
func setColor(dst *mgl32.Vec4, data string) error {
	v, err := parseVector(data)
	if err != nil {
		return err
	}
	v[3] = dst[3]
	*dst = v
	return nil
}

// loadMaterialLibrary parses an MTL file and appends its materials to the
// model. A library that cannot be opened is skipped with a warning; numeric
// errors inside it fail the whole load.
func (l *loader) loadMaterialLibrary(name string) error {
	path := l.model.path + name
	log := l.model.log.With(zap.String("mtllib", path))

	info, err := l.model.fs.Stat(path)
	if err != nil {
		log.Warn("material library not found", zap.Error(err))
		return nil
	}
	log.Info("loading material library", zap.Int64("sizeKB", info.Size()/1024))

	var current *Material
	flush := func() {
		if current != nil {
			l.model.materials = append(l.model.materials, current)
			current = nil
		}
	}

	err = l.model.readLines(path, func(lineNo int, kind, data string) error {
		fail := func(cause error) error {
			return &FormatError{File: path, Line: lineNo, Directive: kind, Err: cause}
		}

		if kind == "newmtl" {
			flush()
			log.Debug("new material", zap.String("name", data))
			current = &Material{Name: data}
			return nil
		}
		if current == nil {
			return nil
		}

		switch kind {
		case "Ka":
			if err := setColor(&current.Ambient, data); err != nil {
				return fail(err)
			}
		case "Kd":
			if err := setColor(&current.Diffuse, data); err != nil {
				return fail(err)
			}
		case "Ks":
			if err := setColor(&current.Specular, data); err != nil {
				return fail(err)
			}
		case "Ni", "d", "Tr", "Ns":
			f, err := parseScalar(data)
			if err != nil {
				return fail(err)
			}
			switch kind {
			case "Ni":
				current.Ambient[3] = f
			case "d":
				current.Diffuse[3] = f
			case "Tr":
				current.Diffuse[3] = 1 - f
			case "Ns":
				current.Specular[3] = f
			}
		case "map_Kd":
			l.setTexture(current, DiffuseTexture, data)
		case "map_Ks":
			l.setTexture(current, SpecularTexture, data)
		case "map_bump", "bump":
			l.setTexture(current, NormalTexture, data)
		}
		// illum, Ke and unknown directives are ignored.
		return nil
	})
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			return err
		}
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("material library not found", zap.Error(err))
			return nil
		}
		return err
	}
	flush()
	return nil
}

// setTexture stores the last whitespace-separated field of a map directive
// (options such as "-bm 0.5" come first) as a base-path-prefixed file name.
func (l *loader) setTexture(mat *Material, slot TextureSlot, data string) {
	fields := strings.Fields(data)
	if len(fields) == 0 {
		return
	}
	mat.Textures[slot] = l.model.path + fields[len(fields)-1]
}
