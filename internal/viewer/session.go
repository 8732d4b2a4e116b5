// Package viewer runs the OBJ viewer: it owns the displayed model, reacts to
// dispatcher events and drives the render loop.
package viewer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/event"
	"github.com/Faultbox/objview/pkg/objmodel"
)

// Session owns the displayed model. A load that fails restores the
// previously displayed file.
type Session struct {
	events *event.Dispatcher
	log    *zap.Logger
	model  *objmodel.Model
	sub    event.Subscription

	current string
	scale   float32

	// OnChange runs after every load attempt with the model now on display,
	// which may be empty.
	OnChange func(*objmodel.Model)
}

// NewSession creates a session and subscribes it to ModelLoadRequested.
func NewSession(events *event.Dispatcher, opts objmodel.Options, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Logger == nil {
		opts.Logger = log
	}
	s := &Session{
		events: events,
		log:    log,
		model:  objmodel.New(opts),
	}
	s.sub = event.Subscribe(events, func(e *event.ModelLoadRequested) {
		s.Load(e.Path, e.Scale)
		e.Handle()
	})
	return s
}

// Model returns the displayed model.
func (s *Session) Model() *objmodel.Model {
	return s.model
}

// Current returns the displayed file and its scale, or "" when nothing is
// loaded.
func (s *Session) Current() (path string, scale float32) {
	return s.current, s.scale
}

// Load replaces the displayed model with path at scale. Requesting the file
// and scale already on display does nothing.
//
// On failure the previous file is loaded again at its previous scale and
// ModelLoadFailed is published with the error and the restored file.
func (s *Session) Load(path string, scale float32) error {
	if path == s.current && scale == s.scale && s.model.IsLoaded() {
		return nil
	}

	prevPath, prevScale := s.current, s.scale
	s.model.Unload()

	err := s.model.Load(path, scale)
	if err == nil {
		s.current, s.scale = path, scale
		s.changed()
		st := s.model.Stats()
		s.events.Publish(&event.ModelLoaded{Path: path, Meshes: st.Meshes, Materials: st.Materials})
		return nil
	}

	s.log.Warn("failed to load model", zap.String("file", path), zap.Error(err))
	s.current, s.scale = "", 0

	var fallback string
	if prevPath != "" {
		if ferr := s.model.Load(prevPath, prevScale); ferr != nil {
			s.log.Error("failed to restore previous model", zap.String("file", prevPath), zap.Error(ferr))
		} else {
			fallback = prevPath
			s.current, s.scale = prevPath, prevScale
		}
	}

	s.changed()
	s.events.Publish(&event.ModelLoadFailed{Path: path, Err: err, Fallback: fallback})
	return err
}

func (s *Session) changed() {
	if s.OnChange != nil {
		s.OnChange(s.model)
	}
}

// Close unsubscribes the session and unloads the model.
func (s *Session) Close() {
	s.events.Unsubscribe(s.sub)
	s.model.Unload()
	s.current, s.scale = "", 0
}
