package effect

import "math"

// Window defaults.
const (
	WindowWidth   = 1280
	WindowHeight  = 800
	MobileWidth   = 768 // below this the background field is not mounted
	MaxPixelRatio = 2.0
)

// Particle field.
const (
	CPUParticleCount = 100
	GPUParticleCount = 30
	ParallaxStrength = 0.5
	FieldSpread      = 10.0 // x/y extent of the spawn volume
	FieldDepth       = 2.0  // z extent of the spawn volume
	MinLifetime      = 100.0
	LifetimeSpan     = 200.0
	MaxVelocity      = 0.001
	FieldFOV         = 75.0
	FieldCameraZ     = 5.0
)

// Portrait.
const (
	ImageSize          = 200
	PixelSize          = 4
	DispersionStrength = 0.15
	DispersionRadius   = 0.3 // uv units
	HoverEase          = 0.1
	HoverSettle        = 1e-4 // snap distance that ends the hover easing
	PointAlphaCutoff   = 0.1
	PlaceholderInset   = 10
	DefaultImagePath   = "assets/profile.jpg"
)

// Columns / transition.
const (
	ColumnGridSize       = 48
	ColumnAlphaThreshold = 50
	MinColumnHeight      = 2.0
	MaxColumnHeight      = 25.0
	HeightInversionSpeed = 0.008
	TransitionStep       = 0.035
	RotationEase         = 0.05
	DragSensitivity      = 0.005
	DragThreshold        = 5.0
	ColumnFOV            = 50.0
	StartDistance        = 20.0
	EndDistance          = 80.0
	EndHeight            = 40.0
	ScreenToWorld        = 0.05
	LookAtLift           = 10.0
	StartScaleDivisor    = 2.5
)

// Rotation limits and the resting orientation of the skyline.
const (
	MinRotationX  = -math.Pi / 3
	MaxRotationX  = math.Pi / 2
	RestRotationX = 1.0
	RestRotationY = math.Pi
)

// Luminance weights.
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)
