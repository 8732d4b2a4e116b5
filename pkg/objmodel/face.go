package objmodel

import (
	"errors"
	"fmt"
	"strconv"
)

var errShortFace = errors.New("face needs at least 3 vertices")

// triplet holds the position/UV/normal references of one face vertex.
// A zero vt or vn means the attribute is absent.
type triplet struct {
	v, vt, vn int
}

// parseTriplet reads "v", "v/vt", "v/vt/vn" or "v//vn".
func parseTriplet(token string) (triplet, error) {
	var t triplet
	fields := split(token, '/')
	if len(fields) == 0 || fields[0] == "" {
		return t, fmt.Errorf("face vertex %q: missing position index", token)
	}

	var err error
	if t.v, err = strconv.Atoi(fields[0]); err != nil {
		return t, fmt.Errorf("face vertex %q: %w", token, err)
	}
	if len(fields) >= 2 && fields[1] != "" {
		if t.vt, err = strconv.Atoi(fields[1]); err != nil {
			return t, fmt.Errorf("face vertex %q: %w", token, err)
		}
	}
	if len(fields) >= 3 && fields[2] != "" {
		if t.vn, err = strconv.Atoi(fields[2]); err != nil {
			return t, fmt.Errorf("face vertex %q: %w", token, err)
		}
	}
	return t, nil
}

// faceTokens splits a face payload on spaces, dropping the empty fields
// produced by repeated separators.
func faceTokens(data string) []string {
	var tokens []string
	for _, f := range split(data, ' ') {
		for _, t := range split(f, '\t') {
			if t != "" {
				tokens = append(tokens, t)
			}
		}
	}
	return tokens
}

// assembleFace resolves every face vertex against the pools, appends the
// vertices to mesh and fan-triangulates them from the first vertex.
// The mesh is left untouched when any reference fails to resolve.
func (p *attributePools) assembleFace(mesh *Mesh, tokens []string) error {
	if len(tokens) < 3 {
		return fmt.Errorf("%w: got %d", errShortFace, len(tokens))
	}

	verts := make([]Vertex, 0, len(tokens))
	for _, tok := range tokens {
		t, err := parseTriplet(tok)
		if err != nil {
			return err
		}

		vert := newVertex()
		if vert.Position, err = p.position(t.v); err != nil {
			return err
		}
		if t.vn != 0 {
			if vert.Normal, err = p.normal(t.vn); err != nil {
				return err
			}
		}
		if t.vt != 0 {
			if vert.UV, err = p.uv(t.vt); err != nil {
				return err
			}
		}
		verts = append(verts, vert)
	}

	ci := uint32(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices, verts...)
	for offset := uint32(1); offset < uint32(len(verts)-1); offset++ {
		mesh.Indices = append(mesh.Indices, ci, ci+offset, ci+offset+1)
	}
	return nil
}
