// Package tracking contains the TrackingItem aggregate: the pipeline stage
// engine with its fixed transition allow-list, the piece entity, and the
// all-or-nothing piece aggregation that gates item-level stage promotion.
package tracking
