package texture

import (
	"go.uber.org/zap"

	"github.com/Faultbox/objview/pkg/objmodel"
)

// TextureSet holds one material's texture handles, indexed by slot.
// Missing or unreadable textures are zero.
type TextureSet [objmodel.TextureSlotCount]Handle

// Has reports whether the slot has a texture.
func (s TextureSet) Has(slot objmodel.TextureSlot) bool {
	return s[slot] != 0
}

// BindMaterials loads the textures referenced by every material of model and
// returns their handles indexed like the model's materials. A texture that
// fails to load is logged and left empty so the mesh still renders with
// its material colours.
func (m *Manager) BindMaterials(model *objmodel.Model) []TextureSet {
	sets := make([]TextureSet, model.MaterialCount())
	for i := range sets {
		mat := model.MaterialByIndex(i)
		for slot := objmodel.TextureSlot(0); slot < objmodel.TextureSlotCount; slot++ {
			name := mat.Texture(slot)
			if name == "" {
				continue
			}
			h, err := m.Load(name)
			if err != nil {
				m.log.Warn("texture unavailable",
					zap.String("material", mat.Name),
					zap.Stringer("slot", slot),
					zap.Error(err))
				continue
			}
			sets[i][slot] = h
		}
	}
	return sets
}

// ReleaseSets drops the references taken by BindMaterials.
func (m *Manager) ReleaseSets(sets []TextureSet) {
	for _, set := range sets {
		for _, h := range set {
			m.Release(h)
		}
	}
}
