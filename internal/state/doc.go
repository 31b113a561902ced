// Package state holds the reconciled wishlist state and the merge rules
// that keep it consistent.
//
// # Overview
//
// Two independent sources feed the same collection: authoritative REST
// snapshots and an unordered, possibly-duplicated stream of push events.
// This package is where they meet. The reconciler is a pure function over
// immutable values; the stores wrap it with the minimal synchronization the
// rest of the application needs.
//
// # Merge Rules
//
// ApplyEvent implements the merge, in priority order:
//
//   - Snapshot (GiftStore.Update): full replace. Authoritative server state
//     at a point in time always wins over pending event ambiguity.
//   - GiftAdded: append, suppressing duplicates by gift id. The creator's
//     own REST response and the push event can both deliver the creation.
//   - ItemReserved: one-way flag. Never reverted, and a known reserver is
//     never cleared by a payload without one.
//   - ContributionAdded: the collected amount is the server's absolute
//     total, never a local increment, so redelivery converges instead of
//     double-counting. Progress is recomputed from collected and price.
//   - StatsChanged: ignored here; it only drives a re-fetch upstream.
//
// Events addressing a gift the local view does not hold are dropped: the
// next full refresh reconciles them. Every rule is idempotent under
// redelivery, which is what makes the snapshot/event race safe: either
// arrival order converges to the same final state.
//
// # Immutability
//
// ApplyEvent never mutates its input; a changed collection is a fresh
// slice. Combined with single-writer stores this gives readers a
// fully-consistent, never-partially-updated view without fine-grained
// locking.
//
// # Stores
//
// GiftStore and StatsStore follow the same pattern: a sync.RWMutex around
// one snapshot value, defensive copies on read, and error updates that keep
// the previous data while recording the failure; a stale collection beats
// an empty screen. ConsecutiveFailures drives the UI's offline indicator.
//
// Both stores are safe to use as zero values.
package state
