package engine

import (
	"github.com/hexbounce/hexbounce/parameter"
	"github.com/hexbounce/hexbounce/physics"
	"github.com/hexbounce/hexbounce/vmath"
)

// BallState is the renderable view of the ball
type BallState struct {
	Position      vmath.Vec2 `json:"position"`
	Velocity      vmath.Vec2 `json:"velocity"`
	Radius        float64    `json:"radius"`
	Speed         float64    `json:"speed"`
	KineticEnergy float64    `json:"kinetic_energy"`
}

// HexagonState is the renderable view of the boundary
type HexagonState struct {
	Center       vmath.Vec2                    `json:"center"`
	Radius       float64                       `json:"radius"`
	Rotation     float64                       `json:"rotation"`
	AngularSpeed float64                       `json:"angular_speed"`
	Vertices     [physics.EdgeCount]vmath.Vec2 `json:"vertices"`
}

// Snapshot is one frame's worth of simulation state, captured between steps
// so renderers and streamers never observe a step in progress.
type Snapshot struct {
	Tick    uint64           `json:"tick"`
	Paused  bool             `json:"paused"`
	FPS     float64          `json:"fps"`
	Ball    BallState        `json:"ball"`
	Hexagon HexagonState     `json:"hexagon"`
	Params  parameter.Params `json:"params"`
	Stats   physics.Stats    `json:"stats"`
}
