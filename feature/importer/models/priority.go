package models

import "sort"

// typePriority orders object types by referential dependency: a type whose
// deserialisation or persistence depends on another type's records must come
// after it. Round entries anchor session entries, laps anchor pit stops.
var typePriority = map[string]int{
	ModelRoundEntry:   1,
	ModelSessionEntry: 2,
	ModelLap:          3,
	ModelPitStop:      4,
}

// OrderTypes returns the given object types in dependency-respecting
// processing order. Ranked types come first, by rank; unranked types follow
// in their original (first-seen) order. The sort is stable, so repeated calls
// with the same input produce the same order. The absence of a declared
// relationship is not an error; it only leaves the tie-break to input order.
func OrderTypes(types []string) []string {
	ordered := make([]string, len(types))
	copy(ordered, types)

	sort.SliceStable(ordered, func(i, j int) bool {
		ri, iRanked := typePriority[ordered[i]]
		rj, jRanked := typePriority[ordered[j]]
		switch {
		case iRanked && jRanked:
			return ri < rj
		case iRanked:
			return true
		default:
			return false
		}
	})

	return ordered
}
