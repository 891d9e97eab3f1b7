// Package cost defines the combined hard/soft cost used to score timetables.
//
// A Cost packs a hard component (constraint violations that make a timetable
// infeasible) and a soft component (preferences) into a single int64 so that
// plain integer comparison orders costs lexicographically:
//
//	Cost = hard<<32 + soft
//
// Every hard unit therefore outweighs any amount of soft cost that fits in
// 32 bits. Max is the largest representable cost and acts as "infinity" in
// searches that minimise cost.
//
// Show renders a cost the way timetablers are used to reading it,
// "hard.soft" with the soft part in five fractional digits, using an exact
// decimal so no float rounding leaks into reports.
package cost
