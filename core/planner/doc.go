// Package planner contains the scheduling core: exhaustive enumeration of
// maximal song orderings inside a practice window, attendance-penalty
// scoring against an availability index, and stable cost ranking.
package planner
