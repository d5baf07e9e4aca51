package entity

// Profile is the display name remembered for a client between runs.
type Profile struct {
	ClientID string
	Name     string
}
