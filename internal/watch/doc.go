// Package watch keeps local stores in sync with the server.
//
// A Watcher pairs one Source with one push channel and refreshes it on
// activation, on demand, after reconnects, and on a periodic backstop
// tick. A single run loop serializes every commit and event merge, so a
// Source's store never sees concurrent writers. Fetches are tagged with a
// generation number; switching sources bumps the generation, and results
// from a superseded generation are discarded.
package watch
