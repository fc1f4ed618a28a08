package view

// MaxIncrementalBatch caps how many changeset entries FilterView,
// SortedView, and JoinView will walk one-by-one in ApplyChanges/Sync
// before giving up and calling Rebuild instead; this keeps a single
// incremental-apply call bounded after a large bulk load. It is a
// package-level setting (rather than per-view) so a host process can
// size it once from config.Config.View.MaxIncrementalBatch.
var MaxIncrementalBatch = 10000
