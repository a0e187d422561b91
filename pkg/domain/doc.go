/*
Package domain contains the core value types of the entity store.

It defines the normalized collection that every store owns, the request object used to
trigger mutations, and the derived views and diffs consumed by adapters. This package is
kept pure and free of external dependencies like I/O or container wiring, following
Hexagonal Architecture principles.

# Key Entities

  - Collection: The per-path state slice (entity map, loading flag, error, active id).
  - Action: The {Type, Payload} request routed by a host container to a named handler.
  - Tree: The whole application state, addressed by dotted paths.
  - View / CollectionDiff: Untyped, JSON-friendly projections used for streaming updates.
*/
package domain
