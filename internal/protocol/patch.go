package protocol

type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

type DungeonRegenerated struct {
	Snapshot Snapshot `json:"snapshot"`
}
