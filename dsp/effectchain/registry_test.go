package effectchain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyFactory(_ Context) (Runtime, error) {
	return &gainRuntime{gain: 1}, nil
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register(StageEQ, dummyFactory))
	assert.NotNil(t, r.Lookup(StageEQ))
	assert.Nil(t, r.Lookup(StageLimiter))

	err := r.Register(StageEQ, dummyFactory)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errDuplicateStage))

	require.Error(t, r.Register(StageAGC, nil))
	require.ErrorIs(t, r.Register(NumStages, dummyFactory), errUnknownStage)
	require.ErrorIs(t, r.Register(Stage(-1), dummyFactory), errUnknownStage)
	assert.Nil(t, r.Lookup(NumStages))
}

func TestRegistryReplace(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	require.NoError(t, r.Replace(StageEQ, dummyFactory))

	rt, err := r.Lookup(StageEQ)(Context{SampleRate: 48000})
	require.NoError(t, err)
	assert.IsType(t, &gainRuntime{}, rt)

	require.Error(t, r.Replace(StageEQ, nil))
	require.ErrorIs(t, r.Replace(NumStages, dummyFactory), errUnknownStage)
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustRegister(StageNoise, dummyFactory)

	assert.Panics(t, func() { r.MustRegister(StageNoise, dummyFactory) })
}

func TestDefaultRegistryBuildsEveryStage(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	ctx := Context{SampleRate: 48000, MaxBlockSize: 256}

	for _, stage := range Stages() {
		factory := r.Lookup(stage)
		require.NotNil(t, factory, stage.String())

		rt, err := factory(ctx)
		require.NoError(t, err, stage.String())
		assert.NotNil(t, rt)
	}

	_, err := r.Lookup(StageNoise)(Context{SampleRate: 48000, NoiseFrameSize: 100})
	require.Error(t, err)
}

func TestStageNames(t *testing.T) {
	t.Parallel()

	want := []string{"noise", "eq", "agc", "compressor", "limiter"}
	for i, stage := range Stages() {
		assert.Equal(t, want[i], stage.String())
	}

	assert.Equal(t, "unknown", NumStages.String())
}
