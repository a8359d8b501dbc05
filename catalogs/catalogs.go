// Package catalogs provides the embedded default showcase catalog.
package catalogs

import _ "embed"

// DefaultYAML is the bundled design-system catalog, embedded at build time.
//
//go:embed default/catalog.yaml
var DefaultYAML []byte
