package picker

// SourceName identifies this integration in references handed to the host.
const SourceName = "fotoware"

// Reference is the normalized description of a chosen asset, shaped for the
// host's selection callback.
type Reference struct {
	Kind               string        `json:"kind"` // always "url"
	Value              string        `json:"value"`
	AssetDocumentProps DocumentProps `json:"assetDocumentProps"`
}

// DocumentProps carries the descriptive fields of a reference. Title, AltText
// and Description are all derived from the asset's "description" builtin
// field; that single-source reuse is deliberate until product says otherwise.
type DocumentProps struct {
	Title            string  `json:"title,omitempty"`
	AltText          string  `json:"altText,omitempty"`
	Description      string  `json:"description,omitempty"`
	CreditLine       string  `json:"creditLine,omitempty"`
	OriginalFilename string  `json:"originalFilename,omitempty"`
	Source           *Source `json:"source,omitempty"`
}

// Source names the external service a reference came from.
type Source struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	URL  string `json:"url"`
}
