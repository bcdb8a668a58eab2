package main

import (
	"fmt"
	"os"

	"github.com/akmonengine/carom"
	"github.com/akmonengine/carom/actor"
)

// SetupShot racks a cue ball and three object balls on the default table.
func SetupShot() *carom.System {
	params := actor.DefaultBallParams()
	table := actor.DefaultTable(params.R)
	system := carom.NewSystem(carom.DefaultConfig(), table, actor.DefaultCue())
	system.Workers = 4

	system.AddBall(actor.NewBall("cue", params, table.W/2, table.H/4))

	// A small triangle in the far half
	spacing := 2 * params.R * 1.001
	system.AddBall(actor.NewBall("1", params, table.W/2, 3*table.H/4))
	system.AddBall(actor.NewBall("2", params, table.W/2-spacing, 3*table.H/4+spacing))
	system.AddBall(actor.NewBall("3", params, table.W/2+spacing, 3*table.H/4+spacing))

	return system
}

func main() {
	system := SetupShot()

	fmt.Println("Break shot")
	fmt.Println("==========")
	fmt.Printf("Table: %.4f x %.4f m, %d balls\n", system.Table.W, system.Table.H, len(system.Balls))
	for _, id := range []string{"cue", "1", "2", "3"} {
		ball, _ := system.Ball(id)
		fmt.Printf("  %-4s at (%.4f, %.4f)\n", id, ball.K.Pos.X(), ball.K.Pos.Y())
	}
	fmt.Println()

	// Straight up the table, slightly below center for a touch of draw
	strike := actor.Strike{
		BallID: "cue",
		V0:     1.5,
		Phi:    90,
		B:      -0.2,
	}
	fmt.Printf("Strike: V0=%.2f m/s, phi=%.0f°, b=%.2f\n\n", strike.V0, strike.Phi, strike.B)

	events, err := system.Simulate(carom.SimulateOptions{Strike: &strike})
	if err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}

	fmt.Println("Event log")
	fmt.Println("---------")
	var collisions, transitions int
	for _, e := range system.Events {
		switch e.Type.Class() {
		case carom.CLASS_COLLISION:
			collisions++
		case carom.CLASS_TRANSITION:
			transitions++
		}
		fmt.Printf("  %s\n", e)
	}
	fmt.Printf("\n%d events this call, %d collisions, %d transitions, %.4fs simulated\n\n",
		len(events), collisions, transitions, system.T)

	fmt.Println("Final rest positions")
	fmt.Println("--------------------")
	for _, id := range []string{"cue", "1", "2", "3"} {
		ball, _ := system.Ball(id)
		fmt.Printf("  %-4s at (%.4f, %.4f) %s\n", id, ball.K.Pos.X(), ball.K.Pos.Y(), ball.State)
	}

	// Uniform 60 Hz resampling, the form a renderer would consume
	trajectories, err := system.Continuize(1.0 / 60.0)
	if err != nil {
		fmt.Fprintln(os.Stderr, "continuize:", err)
		os.Exit(1)
	}
	fmt.Printf("\nContinuized at 60 Hz: %d frames per ball\n", len(trajectories["cue"]))
}
