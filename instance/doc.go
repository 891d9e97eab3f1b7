// Package instance reads timetabling problems for layer assignment from
// YAML and builds the solution they describe.
//
// A document lists, in this order of dependence:
//
//	id, diversifier
//	times            ordered time ids
//	time_groups      id and member times
//	resources        resource ids
//	nodes            id, optional parent, meets (duration, cycle_time,
//	                 domain, resources, assign, fixed)
//	zones            id, node, and meet offsets
//	spreads          spread constraints over limited time groups
//	monitors         kind, weight, and the fields the kind needs
//	layers           parent, children, resources, optional spread
//
// Nodes must be listed after their parents. Preassignments (assign) are
// applied once every meet exists, then fixed meets are fixed. Layers
// become layered.Job values in document order.
//
// Unknown references are reported with sentinel errors (ErrUnknownTime,
// ErrUnknownNode, ...) wrapping the offending id; errors from building
// the solution wrap the soln package's sentinels.
package instance
