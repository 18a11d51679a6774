// Package picker receives asset selections from the embedded Fotoware
// selection widget and translates them into host asset references.
package picker

import (
	"encoding/json"
	"net/url"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-fotoware-picker/config"
	"github.com/jrsteele09/go-fotoware-picker/fotoware"
)

const widgetPath = "/fotoweb/widgets/selection"

// minPreviewSize is the smallest preview the host accepts as a usable source
// image. A selection without one is silently dropped.
const minPreviewSize = 2400

// Callbacks are supplied by the host and invoked, never defined, here.
type Callbacks struct {
	// OnSelect receives the chosen references. Always a single element today.
	OnSelect func([]Reference)
	// OnClose tells the host to dismiss the picker.
	OnClose func()
}

// Message is one inbound cross-document message from the widget's browsing
// context: the origin it was posted from and the raw payload.
type Message struct {
	Origin string
	Data   []byte
}

// Handler validates widget messages for the lifetime of one picker mount.
// After Close it drops everything, mirroring an unsubscribed listener.
type Handler struct {
	baseURL     string
	accessToken string
	callbacks   Callbacks

	mu     sync.Mutex
	closed bool
}

// NewHandler creates a handler bound to the configured tenant and the current
// access token. The caller is responsible for only mounting it while the
// session is authenticated.
func NewHandler(cfg config.Config, accessToken string, callbacks Callbacks) *Handler {
	return &Handler{
		baseURL:     cfg.BaseURL,
		accessToken: accessToken,
		callbacks:   callbacks,
	}
}

// WidgetURL is the embed URL for the selection widget. The bearer token rides
// in a query parameter; that is acceptable only because the widget origin is
// pinned and trusted.
func (h *Handler) WidgetURL() string {
	return h.baseURL + widgetPath + "?" + url.Values{"access_token": {h.accessToken}}.Encode()
}

// HandleMessage runs the validation pipeline on one inbound message. Spoofed
// origins, empty payloads and selections without a large enough preview are
// all silent no-ops; unknown events are logged for diagnostics only.
func (h *Handler) HandleMessage(msg Message) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		return
	}

	if msg.Origin != h.baseURL {
		return
	}
	if len(msg.Data) == 0 {
		return
	}

	var event fotoware.SelectionEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Debug().Err(err).Msg("dropping unparsable widget message")
		return
	}

	if event.Event != fotoware.EventAssetSelected {
		log.Info().Str("event", event.Event).Msg("ignoring unknown widget event")
		return
	}

	preview, ok := event.Asset.PreviewAtLeast(minPreviewSize)
	if !ok {
		return
	}

	description := event.Asset.BuiltinValue("description")
	reference := Reference{
		Kind:  "url",
		Value: h.baseURL + preview.Href,
		AssetDocumentProps: DocumentProps{
			Title:            description,
			AltText:          description,
			Description:      description,
			CreditLine:       event.Asset.BuiltinValue("creditLine"),
			OriginalFilename: event.Asset.Filename,
			Source: &Source{
				Name: SourceName,
				ID:   event.Asset.UniqueID,
				URL:  h.baseURL + event.Asset.Href,
			},
		},
	}

	if h.callbacks.OnSelect != nil {
		h.callbacks.OnSelect([]Reference{reference})
	}
	h.Close()
}

// Close unsubscribes the handler and notifies the host once. It is safe to
// call repeatedly and from the host's own cancel path.
func (h *Handler) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	if h.callbacks.OnClose != nil {
		h.callbacks.OnClose()
	}
}
