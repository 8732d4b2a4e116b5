package texture

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/pkg/encoding"
)

// Handle is a GPU texture name. Zero means no texture.
type Handle uint32

// ErrClosed is returned by Load after Close.
var ErrClosed = errors.New("texture manager closed")

// Uploader moves decoded pixels to the GPU and frees them again.
type Uploader interface {
	Upload(img *image.RGBA) (Handle, error)
	Delete(h Handle)
}

// Source opens texture files. objmodel.OSFileSystem and fstest.MapFS
// satisfy it.
type Source interface {
	Open(name string) (fs.File, error)
}

type entry struct {
	handle Handle
	refs   int
	width  int
	height int
}

// Info describes a cached texture.
type Info struct {
	Name   string
	Handle Handle
	Refs   int
	Width  int
	Height int
}

// Manager caches textures by file name. Every Load or successful Get must be
// paired with a Release; the GPU texture is deleted when the last reference
// goes away.
type Manager struct {
	src     Source
	upload  Uploader
	maxSize int
	log     *zap.Logger

	mu     sync.Mutex
	byName map[string]*entry
	byHandle map[Handle]string
	closed   bool
}

// Options configures a Manager.
type Options struct {
	Source   Source
	Uploader Uploader
	MaxSize  int // Downscale threshold in pixels, 0 disables
	Logger   *zap.Logger
}

// NewManager creates a texture cache.
func NewManager(opts Options) (*Manager, error) {
	if opts.Source == nil || opts.Uploader == nil {
		return nil, fmt.Errorf("texture manager needs a source and an uploader")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		src:      opts.Source,
		upload:   opts.Uploader,
		maxSize:  opts.MaxSize,
		log:      log,
		byName:   make(map[string]*entry),
		byHandle: make(map[Handle]string),
	}, nil
}

// Load returns the handle for name, decoding and uploading the file on first
// use and taking a new reference otherwise.
func (m *Manager) Load(name string) (Handle, error) {
	key := encoding.NormalizePath(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrClosed
	}
	if e, ok := m.byName[key]; ok {
		e.refs++
		return e.handle, nil
	}

	img, err := m.read(name)
	if err != nil {
		return 0, err
	}
	h, err := m.upload.Upload(img)
	if err != nil {
		return 0, fmt.Errorf("uploading %s: %w", name, err)
	}

	m.byName[key] = &entry{handle: h, refs: 1, width: img.Rect.Dx(), height: img.Rect.Dy()}
	m.byHandle[h] = key
	m.log.Debug("texture loaded",
		zap.String("file", key),
		zap.Uint32("handle", uint32(h)),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()))
	return h, nil
}

func (m *Manager) read(name string) (*image.RGBA, error) {
	f, err := m.src.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening texture: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return DecodeBytes(data, name, m.maxSize)
}

// Get takes a new reference on an already loaded texture.
func (m *Manager) Get(name string) (Handle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.byName[encoding.NormalizePath(name)]
	if !ok {
		return 0, false
	}
	e.refs++
	return e.handle, true
}

// Exists reports whether name is cached, without taking a reference.
func (m *Manager) Exists(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byName[encoding.NormalizePath(name)]
	return ok
}

// Release drops one reference to h and deletes the texture when none remain.
// Releasing zero or an unknown handle is a no-op.
func (m *Manager) Release(h Handle) {
	if h == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key, ok := m.byHandle[h]
	if !ok {
		return
	}
	e := m.byName[key]
	e.refs--
	if e.refs > 0 {
		return
	}
	delete(m.byName, key)
	delete(m.byHandle, h)
	m.upload.Delete(h)
	m.log.Debug("texture released", zap.String("file", key))
}

// Textures lists the cached textures sorted by name.
func (m *Manager) Textures() []Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Info, 0, len(m.byName))
	for name, e := range m.byName {
		out = append(out, Info{Name: name, Handle: e.handle, Refs: e.refs, Width: e.width, Height: e.height})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Close deletes every cached texture regardless of outstanding references.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for h := range m.byHandle {
		m.upload.Delete(h)
	}
	if n := len(m.byHandle); n > 0 {
		m.log.Debug("texture cache cleared", zap.Int("count", n))
	}
	m.byName = make(map[string]*entry)
	m.byHandle = make(map[Handle]string)
	m.closed = true
}
