// Package diagram implements the structural model behind a SmartArt-style
// diagram-data sub-document: a small set of typed points (nodes) connected by
// typed, ordered edges, together with the bookkeeping that keeps the graph
// acceptable to a strict, format-validating host application.
//
// The package is organized around a handful of collaborators:
//
//   - [Model] holds the point and connection sets and exposes policy-free
//     lookup, insertion, and deletion primitives.
//   - The facade type [SmartArt] implements the two public mutations,
//     AddNode and RemoveNode, plus image-placeholder embedding.
//   - [Model.Normalize] is the full-graph normalization pass that runs after
//     every mutation: it refreshes style counts, purges orphaned presentation
//     and transition points, renumbers sibling order, and backfills missing
//     connection identifiers. The pass is idempotent.
//
// A Model instance is fully self-contained: it owns its points and
// connections and carries no ambient global state. It is not safe for
// concurrent mutation; callers needing concurrency must serialize whole
// operations behind an exclusive lock, not individual sub-steps, because a
// mutation passes through transiently inconsistent intermediate states.
package diagram
