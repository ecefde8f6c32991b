package effectchain

// Runtime is the per-stage processing and configuration contract.
type Runtime interface {
	// Configure picks the stage's part of s. Stage configs arrive enabled.
	Configure(s *Settings)
	Process(block []float64)
	Reset()
	// LatencySamples is the integer delay the stage adds to the program.
	LatencySamples() int
}

// Meter is an optional interface for stages that expose metering. Meter is
// called after every processed chunk and merges into m.
type Meter interface {
	Meter(m *Metrics)
}
