package deploy

import "embed"

// Embedded engine templates. The azapi provider submits the resolved
// documents as raw resource bodies.
//
//go:embed templates
var engineTemplates embed.FS
