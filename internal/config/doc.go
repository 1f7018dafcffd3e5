// Package config loads webutils settings.
//
// Settings are resolved in three layers, each overriding the one before:
//
//	1. Built-in defaults (Default)
//	2. The TOML file, ~/.config/webutils/config.toml unless overridden
//	3. WEBUTILS_* environment variables
//
// Keys use the same section.camelCase path in every layer, so the file entry
//
//	[api]
//	baseUrl = "https://api.dassana.io"
//
// is overridden by WEBUTILS_API_BASE_URL.
package config
