// Package ui renders the terminal interface.
//
// The Bubble Tea model is a pure consumer of the state stores: it polls
// snapshots on a one-second tick, asks the watchers for refreshes, and
// never mutates synchronized data itself. Two views exist, a landing
// stats card and the wishlist gift rows, with a help overlay and
// switchable color themes persisted to prefs.
package ui
