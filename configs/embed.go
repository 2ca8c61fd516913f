// Package configs provides the settings file templates written by
// `codeunify config init`. They are embedded at build time so every
// distribution carries them.
//
// Precedence of the files they seed (see internal/config Load):
//  1. Built-in defaults
//  2. User settings (~/.config/codeunify/config.yaml)
//  3. Project settings (.codeunify.yaml)
//  4. Environment variables (CODEUNIFY_*)
//  5. Command-line flags
package configs

import _ "embed"

// ProjectConfigTemplate seeds .codeunify.yaml in a source directory.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string

// UserConfigTemplate seeds the per-user settings file.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string
