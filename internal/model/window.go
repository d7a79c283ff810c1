package model

// Window represents an application window as observed at enumeration time.
//
// A Window is a snapshot, not a live handle: the underlying OS window may be
// destroyed at any moment after the snapshot is taken. Consumers must treat a
// window whose ID no longer appears in a fresh enumeration as nonexistent
// rather than an error.
type Window struct {
	ID         int    `yaml:"id"                   json:"id"`
	PID        int    `yaml:"pid"                  json:"pid"`
	App        string `yaml:"app"                  json:"app"`
	Title      string `yaml:"title"                json:"title"`
	Bounds     Bounds `yaml:"bounds"               json:"bounds"`
	DisplayID  int    `yaml:"display"              json:"display"`
	Visible    bool   `yaml:"visible"              json:"visible"`
	Minimized  bool   `yaml:"minimized,omitempty"  json:"minimized,omitempty"`
	Standard   bool   `yaml:"standard"             json:"standard"`
	Fullscreen bool   `yaml:"fullscreen,omitempty" json:"fullscreen,omitempty"`
	Focused    bool   `yaml:"focused,omitempty"    json:"focused,omitempty"`
}
