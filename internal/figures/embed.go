package figures

import _ "embed"

// embeddedCatalog is the bundled figure catalog.
//
//go:embed catalog/catalog.toml
var embeddedCatalog []byte
