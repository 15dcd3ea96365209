package server

import "github.com/hexbounce/hexbounce/engine"

// Message types sent to stream clients
const (
	TypeHello = "hello"
	TypeFrame = "frame"
)

// HelloMessage greets a new client with its assigned id
type HelloMessage struct {
	Type     string `json:"type"`
	ClientID string `json:"client_id"`
}

// FrameMessage carries one simulation snapshot
type FrameMessage struct {
	Type     string          `json:"type"`
	Snapshot engine.Snapshot `json:"snapshot"`
}
