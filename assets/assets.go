// Package assets embeds the files the game needs to start.
package assets

import "embed"

// FS holds the embedded shaders
//
//go:embed shaders/*.glsl
var FS embed.FS
