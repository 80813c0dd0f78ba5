// Package timeline derives screen-sharing intervals from chapter markers and
// turns them into the visibility predicates that drive the compositing graph.
//
// The pipeline is three pure steps:
//   - Extract folds the marker sequence through a two-state machine (idle or
//     pending start) and emits ordered sharing intervals.
//   - Timeline.Clip re-bases those intervals onto a trim window. The timeline
//     remembers its origin so clipping twice with the same window is a no-op.
//   - Partition splits [0, ∞) into alternating speaker and combined ranges.
//
// Ranges are half-open: at the instant sharing starts the combined view is
// already active. Nothing in this package performs I/O.
package timeline
