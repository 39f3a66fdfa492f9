package model

// Participant represents a band member who filled out their availability poll.
// Identity is the name: two Participants with the same name are the same
// person, so Participant values can be used directly as map keys.
type Participant struct {
	Name string
}

// String returns the participant name.
func (p Participant) String() string {
	return p.Name
}
