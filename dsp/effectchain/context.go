package effectchain

// Context provides environmental information that stage runtimes need.
type Context struct {
	SampleRate float64
	// MaxBlockSize is the longest chunk handed to a stage. Longer blocks
	// are processed in chunks.
	MaxBlockSize int
	// ShelvingEdges makes the outer equalizer bands shelves.
	ShelvingEdges bool
	// NoiseFrameSize is the STFT length of the noise suppressor.
	NoiseFrameSize int
}
