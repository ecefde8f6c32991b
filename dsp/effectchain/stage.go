package effectchain

// Stage identifies one position in the chain.
type Stage int

// Stages in processing order.
const (
	StageNoise Stage = iota
	StageEQ
	StageAGC
	StageCompressor
	StageLimiter

	NumStages
)

var stageNames = [NumStages]string{
	StageNoise:      "noise",
	StageEQ:         "eq",
	StageAGC:        "agc",
	StageCompressor: "compressor",
	StageLimiter:    "limiter",
}

// String returns the stage name.
func (s Stage) String() string {
	if s < 0 || s >= NumStages {
		return "unknown"
	}

	return stageNames[s]
}

// Stages returns all stages in processing order.
func Stages() []Stage {
	out := make([]Stage, NumStages)
	for i := range out {
		out[i] = Stage(i)
	}

	return out
}
