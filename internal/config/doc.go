// Package config handles loading and parsing the wishfront configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/wishfront/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. Apply WISHFRONT_-prefixed environment variables on top, so the
//     backend URL, token, and slug can be set without a file (a .env file
//     in the working directory is honored too)
//
// # Default Values
//
//   - Config file: ~/.config/wishfront/config.toml
//   - Server URL: the hosted wishlist backend
//   - Backstop poll interval: 30 seconds
//   - Log level: info
//   - Log file: ~/.local/share/wishfront/wishfront.log
//
// # Configuration Fields
//
//   - ServerURL: HTTP(S) base URL of the wishlist backend
//   - Token: optional bearer token for authenticated endpoints
//   - Slug: public slug of the wishlist to follow
//   - PollSeconds: backstop refresh interval
//   - LogLevel, LogPath: logging destination and verbosity
//
// WSBaseURL derives the push-channel base (ws:// or wss://) from the
// configured server URL, so a single setting covers both transports.
package config
