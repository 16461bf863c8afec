// Package dashboard holds the embedded HTML templates and styles for the web
// dashboard, plus the display formatting shared with the CLI.
package dashboard

import "embed"

//go:embed templates/*.html
var Templates embed.FS

//go:embed assets/*
var Assets embed.FS
