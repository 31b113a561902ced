// Package app provides the orchestration layer for wishfront.
//
// # Overview
//
// This package wires together configuration, the synchronization layer,
// state stores, and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Architecture
//
// Run follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/wishfront/config.toml, then apply
//     environment and flag overrides
//  2. Open the log file and load display preferences
//  3. Initialize the HTTP client for the wishlist backend
//  4. Create the shared state stores read by the UI
//  5. Start a watcher per subscription (landing stats, and the configured
//     wishlist when a slug is set)
//  6. Start the TUI and block until the user exits or the context cancels
//
// # Data Flow
//
// Each watcher owns one push channel and one run loop. Push events merge
// into the stores through the watcher; a periodic backstop fetch
// reconciles anything the channel missed. The UI reads snapshots from the
// stores on its own tick, so it stays responsive even when the network is
// slow.
//
// # Error Handling
//
// Fatal errors returned from Run are limited to configuration and client
// construction failures. Everything at runtime is recoverable: fetch
// failures keep previous data visible and are surfaced in the status
// line, and dropped channels reconnect on their own.
package app
