// Package assets embeds the static files of the rendered map page.
package assets

import _ "embed"

// MapTemplate is the html/template source of a rendered map page.
//
//go:embed map.html.tmpl
var MapTemplate string

// Favicon is served by the map server.
//
//go:embed favicon.svg
var Favicon []byte
