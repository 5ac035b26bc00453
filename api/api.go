// Package api carries the embedded OpenAPI contract of the HTTP surface.
// The document is validated at startup and served at GET /openapi.yml.
package api

import _ "embed"

//go:embed openapi.yml
var OpenAPISpec []byte
