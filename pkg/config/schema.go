package config

import _ "embed"

// The config schema ships with the binary; it is the source of truth for the
// caller-supplied parameter surface.
//
//go:embed config.schema.json
var configSchema []byte

const schemaName = "config.schema.json"
