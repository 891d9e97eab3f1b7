// Package khelm lays out the meets of a timetable, one layer at a time,
// by weighted bipartite matching.
//
// A layer is a parent node whose meets are to be carved into segments,
// and child nodes whose meets must each land on a segment of their own
// duration. khelm grows the segmentation demand by demand, keeps child
// nodes in regular zones of the parent, trims surplus segments where that
// helps resource workload monitors, and finally assigns every child meet
// it can.
//
// Packages:
//
//	cost/      hard/soft solution cost, packed into one int64
//	soln/      the host timetable: instance, meets, nodes, zones, layers, monitors
//	wmatch/    incremental min-cost bipartite matcher with special mode
//	elm/       one layer's matching session and LayerAssign
//	layered/   many layers, parents first, with undo/redo records
//	stats/     run statistics tables
//	instance/  YAML problem files
//	telemetry/ OpenTelemetry setup
//	cmd/khelm  the command-line tool
//
// Quick start:
//
//	p, err := instance.LoadFile("school.yaml")
//	if err != nil { ... }
//	res, err := layered.New().AssignLayers(ctx, p.Soln, p.Jobs)
//
//	go install github.com/katalvlaran/khelm/cmd/khelm@latest
package khelm
