package editor

import (
	"fmt"
	"strings"
	"sync"

	"creative-editor/internal/domain"

	"github.com/google/uuid"
)

// Session is the adjustment aggregate of one asset-edit session. Every
// mutation goes through it and marks the session dirty. Mutations are
// refused with ErrSubmitInFlight while a submission holds the session.
type Session struct {
	mu         sync.Mutex
	id         string
	asset      *domain.Asset
	adj        domain.ImageAdjustments
	dirty      bool
	submitting bool
	newID      func(prefix string) string
}

type SessionOption func(*Session)

// WithIDGenerator replaces the overlay identifier source.
func WithIDGenerator(gen func(prefix string) string) SessionOption {
	return func(s *Session) {
		s.newID = gen
	}
}

// NewSession opens a session. asset may be nil; such a session accepts no
// geometry edits and refuses to submit.
func NewSession(id string, asset *domain.Asset, opts ...SessionOption) *Session {
	s := &Session{
		id: id,
		adj: domain.ImageAdjustments{
			CropArea:     domain.DefaultCropPercent,
			TextOverlays: []domain.TextOverlay{},
			LogoOverlays: []domain.LogoOverlay{},
		},
		newID: func(prefix string) string {
			return prefix + "-" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	if asset != nil {
		a := *asset
		s.asset = &a
		s.adj.CropBox = CropFromPercentage(domain.DefaultCropPercent, a.Dimensions)
	}
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Asset() (domain.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.asset == nil {
		return domain.Asset{}, false
	}
	return *s.asset, true
}

// SetAsset stores a re-fetched asset. A refresh of the same asset bumps its version.
func (s *Session) SetAsset(a domain.Asset) domain.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.asset != nil && s.asset.ID == a.ID && a.Version <= s.asset.Version {
		a.Version = s.asset.Version + 1
	}
	s.asset = &a
	return a
}

// Snapshot returns a deep copy of the pending adjustments.
func (s *Session) Snapshot() domain.ImageAdjustments {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adj.Clone()
}

func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *Session) MarkClean() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}

// HasChanges reports whether there is anything to submit.
func (s *Session) HasChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.asset == nil {
		return false
	}
	return HasChanges(s.adj, s.asset.Dimensions)
}

// Set updates one scalar adjustment. Setting the crop area recomputes the crop box.
func (s *Session) Set(key domain.AdjustmentKey, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return ErrSubmitInFlight
	}

	switch key {
	case domain.KeyCropArea:
		if s.asset == nil {
			return ErrNoAsset
		}
		if err := inRange(key, value, domain.MinCropPercent, domain.MaxCropPercent); err != nil {
			return err
		}
		s.adj.CropArea = value
		s.adj.CropBox = CropFromPercentage(value, s.asset.Dimensions)
	case domain.KeyColorSaturation:
		if err := inRange(key, value, domain.MinSaturation, domain.MaxSaturation); err != nil {
			return err
		}
		s.adj.ColorSaturation = value
	case domain.KeyBrightness:
		if err := inRange(key, value, domain.MinFilter, domain.MaxFilter); err != nil {
			return err
		}
		s.adj.Brightness = value
	case domain.KeyContrast:
		if err := inRange(key, value, domain.MinFilter, domain.MaxFilter); err != nil {
			return err
		}
		s.adj.Contrast = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAdjustment, key)
	}

	s.dirty = true
	return nil
}

// SetCropBox replaces the crop box, fitted to the image.
func (s *Session) SetCropBox(r domain.Rect) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return ErrSubmitInFlight
	}

	if s.asset == nil {
		return ErrNoAsset
	}
	s.adj.CropBox = fitRect(r, s.asset.Dimensions, domain.MinCropSize)
	s.dirty = true
	return nil
}

func (s *Session) DragCrop(container domain.Size, pos domain.Point) (domain.Rect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return domain.Rect{}, ErrSubmitInFlight
	}

	m, err := s.mapper(container)
	if err != nil {
		return domain.Rect{}, err
	}
	s.adj.CropBox = DragCrop(s.adj.CropBox, pos, m, s.asset.Dimensions)
	s.dirty = true
	return s.adj.CropBox, nil
}

func (s *Session) ResizeCrop(container domain.Size, size domain.Size, pos domain.Point) (domain.Rect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return domain.Rect{}, ErrSubmitInFlight
	}

	m, err := s.mapper(container)
	if err != nil {
		return domain.Rect{}, err
	}
	s.adj.CropBox = ResizeCrop(size, pos, m, s.asset.Dimensions)
	s.dirty = true
	return s.adj.CropBox, nil
}

// AddText adds a text overlay styled by a preset; an empty styleID selects the default preset.
func (s *Session) AddText(text, styleID string) (domain.TextOverlay, error) {
	style := domain.DefaultTextStyle
	if styleID != "" {
		var ok bool
		if style, ok = domain.TextStyleByID(styleID); !ok {
			return domain.TextOverlay{}, fmt.Errorf("%w: %s", ErrUnknownTextStyle, styleID)
		}
	}
	return s.addText(text, style)
}

// AddCustomText adds free text with the default preset's metrics and an optional color.
func (s *Session) AddCustomText(text, color string) (domain.TextOverlay, error) {
	style := domain.DefaultTextStyle
	if color != "" {
		style.Color = color
	}
	return s.addText(text, style)
}

func (s *Session) addText(text string, style domain.TextStyle) (domain.TextOverlay, error) {
	if strings.TrimSpace(text) == "" {
		return domain.TextOverlay{}, ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return domain.TextOverlay{}, ErrSubmitInFlight
	}

	if s.asset == nil {
		return domain.TextOverlay{}, ErrNoAsset
	}
	overlay := NewTextOverlay(s.newID("text"), text, style, s.asset.Dimensions)
	s.adj.TextOverlays = append(s.adj.TextOverlays, overlay)
	s.dirty = true
	return overlay, nil
}

func (s *Session) RemoveText(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return ErrSubmitInFlight
	}

	for i, t := range s.adj.TextOverlays {
		if t.ID == id {
			s.adj.TextOverlays = append(s.adj.TextOverlays[:i], s.adj.TextOverlays[i+1:]...)
			s.dirty = true
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrOverlayNotFound, id)
}

// AddLogo adds a logo overlay pointing at imageURL, usually a staged blob.
func (s *Session) AddLogo(imageURL string) (domain.LogoOverlay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return domain.LogoOverlay{}, ErrSubmitInFlight
	}

	if s.asset == nil {
		return domain.LogoOverlay{}, ErrNoAsset
	}
	overlay := NewLogoOverlay(s.newID("logo"), imageURL, s.asset.Dimensions)
	s.adj.LogoOverlays = append(s.adj.LogoOverlays, overlay)
	s.dirty = true
	return overlay, nil
}

// RemoveLogo deletes the logo and returns it so its blob can be revoked.
func (s *Session) RemoveLogo(id string) (domain.LogoOverlay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return domain.LogoOverlay{}, ErrSubmitInFlight
	}

	for i, l := range s.adj.LogoOverlays {
		if l.ID == id {
			s.adj.LogoOverlays = append(s.adj.LogoOverlays[:i], s.adj.LogoOverlays[i+1:]...)
			s.dirty = true
			return l, nil
		}
	}
	return domain.LogoOverlay{}, fmt.Errorf("%w: %s", ErrOverlayNotFound, id)
}

// ResolveLogo swaps a logo's local blob for the durable server path. It is
// not a user edit and leaves the dirty flag alone.
func (s *Session) ResolveLogo(id, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.adj.LogoOverlays {
		if s.adj.LogoOverlays[i].ID == id {
			s.adj.LogoOverlays[i].ImageURL = path
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrOverlayNotFound, id)
}

// TextHandlers binds drag/resize callbacks to the text overlay id.
func (s *Session) TextHandlers(id string, container domain.Size) OverlayHandlers {
	return OverlayHandlers{
		OnDragStop: func(pos domain.Point) error {
			return s.updateText(id, container, func(t domain.TextOverlay, m Mapper, dims domain.Dimensions) domain.TextOverlay {
				return DragText(t, pos, m, dims)
			})
		},
		OnResizeStop: func(size domain.Size, pos domain.Point) error {
			return s.updateText(id, container, func(t domain.TextOverlay, m Mapper, dims domain.Dimensions) domain.TextOverlay {
				return ResizeText(t, size, pos, m, dims)
			})
		},
	}
}

// LogoHandlers binds drag/resize callbacks to the logo overlay id.
func (s *Session) LogoHandlers(id string, container domain.Size) OverlayHandlers {
	return OverlayHandlers{
		OnDragStop: func(pos domain.Point) error {
			return s.updateLogo(id, container, func(l domain.LogoOverlay, m Mapper, dims domain.Dimensions) domain.LogoOverlay {
				return DragLogo(l, pos, m, dims)
			})
		},
		OnResizeStop: func(size domain.Size, pos domain.Point) error {
			return s.updateLogo(id, container, func(l domain.LogoOverlay, m Mapper, dims domain.Dimensions) domain.LogoOverlay {
				return ResizeLogo(l, size, pos, m, dims)
			})
		},
	}
}

func (s *Session) updateText(id string, container domain.Size, fn func(domain.TextOverlay, Mapper, domain.Dimensions) domain.TextOverlay) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return ErrSubmitInFlight
	}

	m, err := s.mapper(container)
	if err != nil {
		return err
	}
	for i := range s.adj.TextOverlays {
		if s.adj.TextOverlays[i].ID == id {
			s.adj.TextOverlays[i] = fn(s.adj.TextOverlays[i], m, s.asset.Dimensions)
			s.dirty = true
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrOverlayNotFound, id)
}

func (s *Session) updateLogo(id string, container domain.Size, fn func(domain.LogoOverlay, Mapper, domain.Dimensions) domain.LogoOverlay) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return ErrSubmitInFlight
	}

	m, err := s.mapper(container)
	if err != nil {
		return err
	}
	for i := range s.adj.LogoOverlays {
		if s.adj.LogoOverlays[i].ID == id {
			s.adj.LogoOverlays[i] = fn(s.adj.LogoOverlays[i], m, s.asset.Dimensions)
			s.dirty = true
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrOverlayNotFound, id)
}

// BeginSubmit claims the session's single submission slot.
func (s *Session) BeginSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return ErrSubmitInFlight
	}
	s.submitting = true
	return nil
}

func (s *Session) EndSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
}

func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// ResetAfterApply clears what the server baked into the image: overlays,
// saturation and crop. It returns the dropped logos.
func (s *Session) ResetAfterApply() []domain.LogoOverlay {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := s.adj.LogoOverlays
	s.adj.TextOverlays = []domain.TextOverlay{}
	s.adj.LogoOverlays = []domain.LogoOverlay{}
	s.adj.ColorSaturation = 0
	s.adj.CropArea = domain.MaxCropPercent
	if s.asset != nil {
		s.adj.CropBox = domain.FullFrame(s.asset.Dimensions)
	}
	s.dirty = false
	return dropped
}

// Layout maps the crop box and every overlay box into the container.
func (s *Session) Layout(container domain.Size) (Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.mapper(container)
	if err != nil {
		return Layout{}, err
	}
	return layout(m, s.adj), nil
}

// mapper must be called with s.mu held.
func (s *Session) mapper(container domain.Size) (Mapper, error) {
	if s.asset == nil {
		return Mapper{}, ErrNoAsset
	}
	return NewMapper(container, s.asset.Dimensions)
}

// HasChanges is true when any overlay exists, saturation is non-zero, or the
// crop box differs from the full frame.
func HasChanges(adj domain.ImageAdjustments, dims domain.Dimensions) bool {
	return len(adj.TextOverlays) > 0 ||
		len(adj.LogoOverlays) > 0 ||
		adj.ColorSaturation != 0 ||
		adj.CropBox != domain.FullFrame(dims)
}

func inRange(key domain.AdjustmentKey, v, lo, hi float64) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s must be within [%g, %g]", ErrValueOutOfRange, key, lo, hi)
	}
	return nil
}
