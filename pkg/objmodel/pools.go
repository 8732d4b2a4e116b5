package objmodel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	errIndexZero  = errors.New("index 0 is not a valid reference")
	errOutOfRange = errors.New("index out of range")
)

// attributePools accumulates positions, normals and UVs in file order.
// Faces reference them with 1-based (or negative, relative) indices.
type attributePools struct {
	positions []mgl32.Vec4
	normals   []mgl32.Vec4
	uvs       []mgl32.Vec2
}

// addPosition parses "x y z [w]", scales all components and forces w to 1.
func (p *attributePools) addPosition(data string, scale float32) error {
	v, err := parseVector(data)
	if err != nil {
		return err
	}
	v = v.Mul(scale)
	v[3] = 1
	p.positions = append(p.positions, v)
	return nil
}

// addNormal parses "x y z" and forces w to 0.
func (p *attributePools) addNormal(data string) error {
	v, err := parseVector(data)
	if err != nil {
		return err
	}
	v[3] = 0
	p.normals = append(p.normals, v)
	return nil
}

// addUV parses "u v [w]" and keeps u and v.
func (p *attributePools) addUV(data string) error {
	v, err := parseVector(data)
	if err != nil {
		return err
	}
	p.uvs = append(p.uvs, mgl32.Vec2{v[0], v[1]})
	return nil
}

func (p *attributePools) position(index int) (mgl32.Vec4, error) {
	i, err := resolveIndex(index, len(p.positions))
	if err != nil {
		return mgl32.Vec4{}, fmt.Errorf("position %d: %w", index, err)
	}
	return p.positions[i], nil
}

func (p *attributePools) normal(index int) (mgl32.Vec4, error) {
	i, err := resolveIndex(index, len(p.normals))
	if err != nil {
		return mgl32.Vec4{}, fmt.Errorf("normal %d: %w", index, err)
	}
	return p.normals[i], nil
}

func (p *attributePools) uv(index int) (mgl32.Vec2, error) {
	i, err := resolveIndex(index, len(p.uvs))
	if err != nil {
		return mgl32.Vec2{}, fmt.Errorf("uv %d: %w", index, err)
	}
	return p.uvs[i], nil
}

// resolveIndex maps an OBJ reference onto a 0-based slice index.
// Positive indices count from 1; negative indices count back from the end.
func resolveIndex(index, size int) (int, error) {
	var i int
	switch {
	case index > 0:
		i = index - 1
	case index < 0:
		i = size + index
	default:
		return 0, errIndexZero
	}
	if i < 0 || i >= size {
		return 0, fmt.Errorf("%w (pool holds %d)", errOutOfRange, size)
	}
	return i, nil
}

// parseVector reads up to four whitespace-separated floats. Missing
// components are 0; components past the fourth are ignored.
func parseVector(data string) (mgl32.Vec4, error) {
	var v mgl32.Vec4
	for i, field := range strings.Fields(data) {
		if i >= len(v) {
			break
		}
		f, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return mgl32.Vec4{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseScalar reads the first whitespace-separated float of data.
func parseScalar(data string) (float32, error) {
	fields := strings.Fields(data)
	if len(fields) == 0 {
		return 0, errors.New("missing value")
	}
	f, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}
