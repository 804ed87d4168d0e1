package domain

// Direction tells whether a port receives or emits data.
type Direction string

const (
	Inbound  Direction = "inbound"
	Outbound Direction = "outbound"
)

// Port is a connection point derived from a node's type and configuration.
// Ports are recomputed on demand and never persisted; edges reference them by ID.
type Port struct {
	ID        string    `json:"id"`
	NodeID    string    `json:"node_id"`
	Direction Direction `json:"direction"`
	Label     string    `json:"label"`
}

// FindPort returns the port with the given id and direction, if present.
func FindPort(ports []Port, id string, dir Direction) (Port, bool) {
	for _, p := range ports {
		if p.ID == id && p.Direction == dir {
			return p, true
		}
	}
	return Port{}, false
}
