package protocol

import "encoding/json"

type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RequestRegenerate asks the server to run a fresh generation. A nil Seed
// means "next sequential seed"; other fields override the server defaults
// when set.
type RequestRegenerate struct {
	Seed            *int64   `json:"seed,omitempty"`
	SideRoomChance  *float64 `json:"sideRoomChance,omitempty"`
	MaxSideRooms    *int     `json:"maxSideRooms,omitempty"`
	ExtraEdgeChance *float64 `json:"extraEdgeChance,omitempty"`
}
