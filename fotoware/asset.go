// Package fotoware holds the wire types owned by the Fotoware service.
// The picker only ever reads these; it never mutates or persists them.
package fotoware

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EventAssetSelected is posted by the selection widget when the user picks an asset.
const EventAssetSelected = "assetSelected"

// SelectionEvent is the envelope of a message posted by the embedded
// selection widget.
type SelectionEvent struct {
	Event string `json:"event"`
	Asset Asset  `json:"asset"`
}

// FieldValue is a metadata value that the service serializes either as a
// single string or as a list of strings.
type FieldValue []string

// UnmarshalJSON accepts both scalar and list encodings.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*v = FieldValue{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = FieldValue(list)
		return nil
	}
	return fmt.Errorf("field value must be a string or a list of strings: %s", data)
}

// Display reduces the value to a single display string, joining list
// values with ", ".
func (v FieldValue) Display() string {
	return strings.Join(v, ", ")
}

// BuiltinField is a semantic metadata field, e.g. "description" or "creditLine".
type BuiltinField struct {
	Field    string     `json:"field"`
	Required bool       `json:"required"`
	Value    FieldValue `json:"value"`
}

// Preview is one rendered variant of an asset.
type Preview struct {
	Size   int    `json:"size"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Href   string `json:"href"`
	Square bool   `json:"square"`
}

// Rendition is a downloadable variant of an asset.
type Rendition struct {
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Href        string `json:"href"`
	Default     bool   `json:"default"`
	Original    bool   `json:"original"`
	SizeFixed   bool   `json:"sizeFixed"`
	Profile     string `json:"profile"`
}

// MetadataValue is an entry in the asset's free-form metadata map.
type MetadataValue struct {
	Value FieldValue `json:"value"`
}

// Capabilities describes what the current user may do with the asset.
type Capabilities struct {
	Crop                 bool `json:"crop"`
	Print                bool `json:"print"`
	PrintWithAnnotations bool `json:"printWithAnnotations"`
}

// ImageAttributes carries the pixel-level properties of an image asset.
type ImageAttributes struct {
	PixelWidth  int     `json:"pixelwidth"`
	PixelHeight int     `json:"pixelheight"`
	Resolution  float64 `json:"resolution"`
	FlipMirror  int     `json:"flipmirror"`
	Rotation    int     `json:"rotation"`
	Colorspace  string  `json:"colorspace"`
}

// Attributes wraps type-specific asset attributes.
type Attributes struct {
	ImageAttributes ImageAttributes `json:"imageattributes"`
}

// Ancestor is an archive or folder the asset lives under.
type Ancestor struct {
	Name string `json:"name"`
	Href string `json:"href"`
	Data string `json:"data"`
}

// Asset is the service's representation of a stored digital asset.
// Only the subset needed to build a host asset reference is ever read here,
// but the shape mirrors what the widget actually posts.
type Asset struct {
	Href          string                   `json:"href"`
	ArchiveHref   string                   `json:"archiveHREF"`
	ArchiveID     int                      `json:"archiveId"`
	Created       string                   `json:"created"`
	Modified      string                   `json:"modified"`
	CreatedBy     string                   `json:"createdBy"`
	ModifiedBy    string                   `json:"modifiedBy"`
	Filename      string                   `json:"filename"`
	Filesize      int64                    `json:"filesize"`
	UniqueID      string                   `json:"uniqueid"`
	Doctype       string                   `json:"doctype"`
	Permissions   []string                 `json:"permissions"`
	Capabilities  Capabilities             `json:"capabilities"`
	Previews      []Preview                `json:"previews"`
	Renditions    []Rendition              `json:"renditions"`
	PreviewToken  string                   `json:"previewToken"`
	Attributes    Attributes               `json:"attributes"`
	Metadata      map[string]MetadataValue `json:"metadata"`
	BuiltinFields []BuiltinField           `json:"builtinFields"`
	Ancestors     []Ancestor               `json:"ancestors"`
}

// BuiltinValue looks up a builtin field by name and reduces it to a display
// string. A missing field reads as empty.
func (a Asset) BuiltinValue(name string) string {
	for _, f := range a.BuiltinFields {
		if f.Field == name {
			return f.Value.Display()
		}
	}
	return ""
}

// PreviewAtLeast returns the first preview whose size meets the minimum.
func (a Asset) PreviewAtLeast(size int) (Preview, bool) {
	for _, p := range a.Previews {
		if p.Size >= size {
			return p, true
		}
	}
	return Preview{}, false
}
