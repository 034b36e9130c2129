// Package cache provides the bounded in-memory upload cache.
//
// Uploaded file sets are held between the header-analysis request and the
// merge request that consumes them, keyed by an opaque token handed back to
// the client. The store is the only state shared across requests.
//
// # Semantics
//
//   - Bounded capacity with oldest-entry-first eviction.
//   - Claim removes the entry atomically on consume, so two in-flight merge
//     requests can never race on the same cached bytes.
//
// # Usage
//
//	store := cache.NewStore(cfg.MaxEntries)
//	token := store.Put(files)
//	// ... later request:
//	files, ok := store.Claim(token)
package cache
