package metrics

import (
	"context"
	"sync"
	"time"
)

// Snapshot is one fully-published set of metric values from a single
// sampling cycle. Readers always see a complete snapshot, never a torn one.
type Snapshot struct {
	CPUPct      float64
	RAMUsedGB   float64
	RAMTotalGB  float64
	GPUPct      float64
	SwapUsedGB  float64
	SwapTotalGB float64
	PressurePct float64
	Taken       time.Time
}

// RAMPct returns RAM usage as a percentage (0 when the total is unknown).
func (s Snapshot) RAMPct() float64 {
	if s.RAMTotalGB <= 0 {
		return 0
	}
	return clampPct(s.RAMUsedGB / s.RAMTotalGB * 100)
}

// SwapPct returns swap usage as a percentage (0 when no swap is configured).
func (s Snapshot) SwapPct() float64 {
	if s.SwapTotalGB <= 0 {
		return 0
	}
	return clampPct(s.SwapUsedGB / s.SwapTotalGB * 100)
}

// Histories is a consistent copy of all waveform rings, oldest to newest,
// in percent.
type Histories struct {
	CPU  []float64
	GPU  []float64
	RAM  []float64
	Swap []float64
}

// Sampler runs the background sampling loop. Each cycle it fans out the
// fast probe (GPU + pressure) concurrently with the slow probe (CPU, RAM,
// swap), then publishes one consistent snapshot under a single mutex. The
// lock is only ever held for the field copy; probes run outside it so a
// hung probe never blocks readers.
type Sampler struct {
	src          Source
	period       time.Duration
	fastJoinWait time.Duration

	mu   sync.Mutex
	snap Snapshot
	cpu  *Ring
	gpu  *Ring
	ram  *Ring
	swap *Ring
}

type fastSample struct {
	gpuPct      float64
	pressurePct float64
}

// NewSampler creates a sampler publishing into rings of the given capacity.
func NewSampler(src Source, period, fastJoinWait time.Duration, ringCap int) *Sampler {
	if period <= 0 {
		period = time.Second
	}
	if fastJoinWait <= 0 {
		fastJoinWait = 3 * time.Second
	}
	return &Sampler{
		src:          src,
		period:       period,
		fastJoinWait: fastJoinWait,
		cpu:          NewRing(ringCap),
		gpu:          NewRing(ringCap),
		ram:          NewRing(ringCap),
		swap:         NewRing(ringCap),
	}
}

// Run loops until ctx is cancelled. The RAM total is sampled once up front;
// it does not change while the process lives. Cadence is soft: if a cycle
// overruns the period the next one starts immediately.
func (s *Sampler) Run(ctx context.Context) {
	ramTotal := s.src.RAMTotalGB(ctx)
	s.mu.Lock()
	s.snap.RAMTotalGB = ramTotal
	s.mu.Unlock()

	for {
		start := time.Now()
		s.cycle(ctx, ramTotal)

		sleep := s.period - time.Since(start)
		if sleep <= 0 {
			// Overran the period: roll straight into the next cycle,
			// but still honor cancellation.
			select {
			case <-ctx.Done():
				return
			default:
			}
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(sleep):
		}
	}
}

// cycle runs both probes and publishes one snapshot.
func (s *Sampler) cycle(ctx context.Context, ramTotal float64) {
	fastCh := make(chan fastSample, 1)
	go func() {
		fastCh <- fastSample{
			gpuPct:      s.src.SampleGPU(ctx),
			pressurePct: s.src.SamplePressure(ctx),
		}
	}()

	cpuPct, ramUsed, swapUsed, swapTotal := s.src.SampleCPURAMSwap(ctx)

	// Bounded join: a hung fast probe must not stall the cycle past the
	// cap. On timeout this cycle keeps the previous GPU/pressure values.
	var fast fastSample
	gotFast := false
	select {
	case fast = <-fastCh:
		gotFast = true
	case <-time.After(s.fastJoinWait):
	case <-ctx.Done():
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.CPUPct = clampPct(cpuPct)
	s.snap.RAMUsedGB = ramUsed
	s.snap.RAMTotalGB = ramTotal
	s.snap.SwapUsedGB = swapUsed
	s.snap.SwapTotalGB = swapTotal
	if gotFast {
		s.snap.GPUPct = clampPct(fast.gpuPct)
		s.snap.PressurePct = clampPct(fast.pressurePct)
	}
	s.snap.Taken = time.Now()

	s.cpu.Push(s.snap.CPUPct)
	s.gpu.Push(s.snap.GPUPct)
	s.ram.Push(s.snap.RAMPct())
	s.swap.Push(s.snap.SwapPct())
}

// Snapshot returns a copy of the latest published snapshot. Never blocks on
// sampling; a reader may observe a snapshot up to one cycle stale.
func (s *Sampler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Histories returns copies of all waveform rings.
func (s *Sampler) Histories() Histories {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Histories{
		CPU:  s.cpu.Data(),
		GPU:  s.gpu.Data(),
		RAM:  s.ram.Data(),
		Swap: s.swap.Data(),
	}
}
