package game

// Physics and table constants for the frame-stepped billiards engine.
// Every tick is a unit step; none of these are scaled by wall-clock time.

const (
	BallRadius         = 25.0 / 2
	ShotPower          = 40.0
	DragFactor         = 0.975
	MinPower           = 0.05
	MaxContactsPerTick = 32
	RackSpacing        = 27.0
	NumBalls           = 16 // 0=cue, 1-7=solids, 8=eight, 9-15=stripes

	// Outer decorative frame and the rail inset of the playable cloth.
	OuterX      = 0.0
	OuterY      = 100.0
	OuterWidth  = 1140.0
	OuterHeight = 640.0
	RailInset   = 70.0
)
