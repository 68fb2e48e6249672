package constants

import "os"

func GetOutputDir() string {
	path := os.Getenv("GENERATED_PATH")
	if path != "" {
		return path
	}
	return "./generated"
}

func GetDynamoEndpoint() string {
	endpoint := os.Getenv("DYNAMODB_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

func GetServeAddr() string {
	addr := os.Getenv("SERVE_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

const RendersTable = "danseband-renders"

// MIDIUtil's default resolution, kept so beat offsets land on the same ticks
const TicksPerQuarter = 960

const BeatsPerBar = 4

const DrumChannel = 9

const (
	PitchBendCenter = 8192
	PitchBendMax    = 16383
	ControllerMax   = 127
)

const (
	CCModulation = 1
	CCVolume     = 7
	CCPan        = 10
	CCExpression = 11
)

// General MIDI drum map
const (
	Kick    = 36
	Snare   = 38
	HiHat   = 42
	LowTom  = 45
	MidTom  = 47
	Crash   = 49
	HighTom = 50
	Ride    = 51
)
