// Package studio is the thin boundary between this integration and the host
// content studio. The host owns registration, layout and rendering; this
// package only describes what to plug in where.
package studio

import (
	"github.com/jrsteele09/go-fotoware-picker/auth"
	"github.com/jrsteele09/go-fotoware-picker/config"
	"github.com/jrsteele09/go-fotoware-picker/credentials"
	"github.com/jrsteele09/go-fotoware-picker/picker"
)

// Filter restricts which assets the selection widget offers.
type Filter struct {
	Key      string
	Values   []string
	Inverted bool
}

// PluginConfig is the host-facing configuration of the integration.
type PluginConfig struct {
	Domain           string
	AllowMultiSelect bool
	Filters          []Filter
}

// AssetSource describes one pluggable asset source for the host's picker UI.
type AssetSource struct {
	Name  string
	Title string
	// New mounts a selection handler for one picker session. The host calls
	// it with the current access token and its selection callbacks, and must
	// call Close on the returned handler when the picker is dismissed.
	New func(accessToken string, callbacks picker.Callbacks) *picker.Handler
}

// Plugin bundles the auth controller (wrapping the whole studio) with the
// asset sources it enables.
type Plugin struct {
	Name         string
	Config       PluginConfig
	Auth         *auth.Controller
	AssetSources []AssetSource
}

// NewPlugin wires the integration for registration with a host.
func NewPlugin(cfg config.Config, creds *credentials.Store, pluginConfig PluginConfig) *Plugin {
	controller := auth.New(cfg, creds)
	return &Plugin{
		Name:   "fotoware-dam",
		Config: pluginConfig,
		Auth:   controller,
		AssetSources: []AssetSource{
			{
				Name:  picker.SourceName,
				Title: "Fotoware",
				New: func(accessToken string, callbacks picker.Callbacks) *picker.Handler {
					return picker.NewHandler(cfg, accessToken, callbacks)
				},
			},
		},
	}
}
