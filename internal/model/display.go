package model

// Display represents a physical monitor. The ID is the OS display identifier
// and stays stable across pointer moves, but a display may disappear at any
// time when monitors are connected, disconnected, or put to sleep.
type Display struct {
	ID      int    `yaml:"id"                json:"id"`
	Bounds  Bounds `yaml:"bounds"            json:"bounds"`
	Primary bool   `yaml:"primary,omitempty" json:"primary,omitempty"`
}

// Equal reports whether two displays refer to the same monitor.
func (d Display) Equal(other Display) bool {
	return d.ID == other.ID
}
