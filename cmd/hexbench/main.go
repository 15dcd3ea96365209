// hexbench drives the physics core as fast as it can and reports step
// timings, used to size the simulation rate and catch regressions.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hexbounce/hexbounce/parameter"
	"github.com/hexbounce/hexbounce/physics"
	"github.com/hexbounce/hexbounce/vmath"
)

var (
	stepsFlag  = flag.Int("steps", 1_000_000, "Number of simulation steps")
	dtFlag     = flag.Float64("dt", 1.0/60.0, "Fixed timestep in seconds")
	configFlag = flag.String("config", "", "Path to a yaml parameter file")
	spinFlag   = flag.Float64("spin", 0, "Override hexagon angular speed, rad/s")
)

func main() {
	flag.Parse()

	params := parameter.Default()
	if *configFlag != "" {
		var err error
		if params, err = parameter.Load(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
	}
	if *spinFlag != 0 {
		params.HexagonAngularSpeed = *spinFlag
	}

	eng := physics.NewEngine(nil)
	hex := physics.NewHexagon(vmath.Vec2{}, params.HexagonRadius, params.HexagonAngularSpeed)
	ball := physics.NewBall(
		vmath.Vec2{Y: -params.HexagonRadius * 0.3},
		params.BallRadius, params.BallMass)
	ball.SetVelocity(vmath.Vec2{X: 75, Y: -40})

	start := time.Now()
	for i := 0; i < *stepsFlag; i++ {
		if err := eng.Step(ball, hex, *dtFlag, params); err != nil {
			fmt.Fprintf(os.Stderr, "step %d: %v\n", i, err)
			os.Exit(1)
		}
	}
	elapsed := time.Since(start)

	stats := eng.Stats()
	perStep := elapsed / time.Duration(*stepsFlag)
	simulated := float64(*stepsFlag) * *dtFlag

	fmt.Printf("steps          %d\n", stats.Steps)
	fmt.Printf("simulated time %.1fs in %v (%.1fx realtime)\n",
		simulated, elapsed.Round(time.Millisecond), simulated/elapsed.Seconds())
	fmt.Printf("per step       %v (avg %v, min %v, max %v)\n",
		perStep, stats.AvgStepTime, stats.MinStepTime, stats.MaxStepTime)
	fmt.Printf("collisions     %d\n", stats.Collisions)
	fmt.Printf("anomalies      %d\n", stats.Anomalies)
	fmt.Printf("final state    pos=(%.2f, %.2f) speed=%.2f energy=%.1f\n",
		ball.Position.X, ball.Position.Y, ball.Speed(), ball.KineticEnergy())
}
