package models

// Team is one group of a team division. Derived on demand, never
// persisted.
type Team struct {
	// Number is the 1-based team number in output order
	Number int

	// Players are the team members in roster order
	Players []*Player
}
