package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-liveaudio/dsp/filter/bank"
	"github.com/cwbudde/algo-liveaudio/dsp/signal"
	"github.com/cwbudde/algo-liveaudio/engine"
)

// TUICmd runs the engine in real time on a generated tone and lets the
// user change parameters while it plays.
type TUICmd struct {
	EngineFlags `embed:""`

	Frequency  float64       `default:"440" help:"Test tone frequency in Hz."`
	Amplitude  float64       `default:"0.5" help:"Test tone peak amplitude."`
	NoiseLevel float64       `name:"noise-level" default:"0.02" help:"Peak amplitude of added white noise."`
	Refresh    time.Duration `default:"100ms" help:"Status refresh interval."`
}

// Run starts the audio goroutine and the terminal UI.
func (c *TUICmd) Run(g *Globals) error {
	log := g.logger()
	log.SetOutput(io.Discard)

	e, err := c.newEngine(g, log)
	if err != nil {
		return err
	}
	defer e.Release()

	osc := signal.NewOscillator(g.SampleRate, c.Frequency, c.Amplitude, 1)
	osc.SetNoise(c.NoiseLevel)

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		runAudio(ctx, e, osc, g.BlockSize, g.SampleRate)
	}()

	p := tea.NewProgram(newModel(e, c.Refresh), tea.WithAltScreen())
	_, err = p.Run()

	cancel()
	wg.Wait()

	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	return nil
}

// runAudio feeds e one block per block period until ctx is done, standing
// in for a device callback. It returns at once when the block period is not
// positive.
func runAudio(ctx context.Context, e *engine.Engine, osc *signal.Oscillator, blockSize int, sampleRate float64) {
	if blockSize <= 0 || !(sampleRate > 0) {
		return
	}

	buf := make([]float64, blockSize)

	period := time.Duration(float64(blockSize) * float64(time.Second) / sampleRate)
	if period <= 0 {
		return
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			osc.Fill(buf)
			e.ProcessInPlace(buf)
		}
	}
}

type statusMsg engine.EngineStatus

func pollStatus(e *engine.Engine, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg {
		return statusMsg(e.Status())
	})
}

// model is the bubbletea model of the control surface. Every key publishes
// through the engine setters; nothing here touches audio state.
type model struct {
	engine  *engine.Engine
	refresh time.Duration
	band    int
	status  engine.EngineStatus
}

func newModel(e *engine.Engine, refresh time.Duration) model {
	if refresh <= 0 {
		refresh = 100 * time.Millisecond
	}

	return model{engine: e, refresh: refresh, status: e.Status()}
}

// Init starts the status polling.
func (m model) Init() tea.Cmd {
	return pollStatus(m.engine, m.refresh)
}

// Update handles key presses and status ticks.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case statusMsg:
		m.status = engine.EngineStatus(msg)
		return m, pollStatus(m.engine, m.refresh)
	}

	return m, nil
}

// gainStep is the equalizer gain change per key press in dB.
const gainStep = 1.0

func (m model) handleKey(key string) (tea.Model, tea.Cmd) {
	s := m.engine.Settings()

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		m.band = (m.band + bank.NumBands - 1) % bank.NumBands
	case "right", "l":
		m.band = (m.band + 1) % bank.NumBands
	case "up", "k":
		m.setBandGain(s.EQ.Bands[m.band].GainDB + gainStep)
	case "down", "j":
		m.setBandGain(s.EQ.Bands[m.band].GainDB - gainStep)
	case "0":
		m.setBandGain(0)
	case "e":
		m.engine.SetEqEnabled(!s.EQ.Enabled)
	case "c":
		m.engine.SetCompressorEnabled(!s.Compressor.Enabled)
	case "L":
		m.engine.SetLimiterEnabled(!s.Limiter.Enabled)
	case "a":
		m.engine.SetAGCEnabled(!s.AGC.Enabled)
	case "n":
		m.engine.SetNoiseSuppressionEnabled(!s.Noise.Enabled)
	case "+":
		m.engine.SetNoiseSuppression(s.Noise.Strength + 0.1)
	case "-":
		m.engine.SetNoiseSuppression(s.Noise.Strength - 0.1)
	}

	m.status = m.engine.Status()

	return m, nil
}

func (m model) setBandGain(db float64) {
	b := m.engine.Settings().EQ.Bands[m.band]
	_ = m.engine.SetEqBand(m.band, b.FrequencyHz, db, b.Q)
}

// View renders the UI.
func (m model) View() string {
	s := m.engine.Settings()
	st := m.status

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("liveaudio"))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "%s %s   %s %.2f ms   %s %d\n\n",
		headerStyle.Render("state"), valueStyle.Render(st.State.String()),
		headerStyle.Render("latency"), st.LatencyMs,
		headerStyle.Render("blocks"), st.BlocksProcessed)

	sb.WriteString(headerStyle.Render("equalizer"))
	sb.WriteString(" " + onOff(s.EQ.Enabled) + "\n")

	for i, b := range s.EQ.Bands {
		label := fmt.Sprintf("%7.1f Hz %+6.1f dB", b.FrequencyHz, b.GainDB)
		if i == m.band {
			label = activeStyle.Render("> " + label)
		} else {
			label = valueStyle.Render("  " + label)
		}

		sb.WriteString(label + "\n")
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s %s  GR %5.2f dB\n", headerStyle.Render("compressor"), onOff(s.Compressor.Enabled), st.CompressorGainReductionDB)
	fmt.Fprintf(&sb, "%s %s  GR %5.2f dB  %s\n", headerStyle.Render("limiter   "), onOff(s.Limiter.Enabled), st.LimiterGainReductionDB, st.LimiterState)
	fmt.Fprintf(&sb, "%s %s  gain %+5.2f dB\n", headerStyle.Render("agc       "), onOff(s.AGC.Enabled), st.AGCGainDB)
	fmt.Fprintf(&sb, "%s %s  strength %.1f  NR %5.2f dB\n", headerStyle.Render("noise     "), onOff(s.Noise.Enabled), s.Noise.Strength, st.NoiseReductionDB)
	fmt.Fprintf(&sb, "\npeak in %6.1f dB  out %6.1f dB\n", st.InputPeakDB, st.OutputPeakDB)

	if st.NumericFaults > 0 || st.Overruns > 0 {
		sb.WriteString(warnStyle.Render(fmt.Sprintf("faults %d  overruns %d", st.NumericFaults, st.Overruns)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("←/→ band  ↑/↓ gain  0 flat  e/c/L/a/n toggle  +/- strength  q quit"))
	sb.WriteString("\n")

	return sb.String()
}
