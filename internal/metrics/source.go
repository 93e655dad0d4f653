package metrics

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

const gb = 1024 * 1024 * 1024

// cpuSampleInterval is the blocking window for the CPU probe. A single
// instantaneous read reports the since-boot average, so the probe takes two
// ticks over this interval and returns the delta. This is what makes the
// slow probe slow.
const cpuSampleInterval = 600 * time.Millisecond

// Source produces raw metric values. Every method degrades to a neutral
// default on failure: the telemetry pane must keep painting no matter which
// probe is broken on this machine.
type Source interface {
	// SampleCPURAMSwap runs the slow probe (roughly cpuSampleInterval).
	SampleCPURAMSwap(ctx context.Context) (cpuPct, ramUsedGB, swapUsedGB, swapTotalGB float64)
	// SampleGPU returns GPU utilization in percent.
	SampleGPU(ctx context.Context) float64
	// SamplePressure returns system memory pressure in percent.
	SamplePressure(ctx context.Context) float64
	// RAMTotalGB is stable for the life of the process; sampled once.
	RAMTotalGB(ctx context.Context) float64
}

// SystemSource reads the local host via gopsutil plus two OS command probes
// for the metrics gopsutil does not cover (GPU utilization, memory
// pressure). Not safe for concurrent use; the sampler is the sole caller.
type SystemSource struct {
	ProbeTimeout time.Duration

	// last-known swap total, reused when the swap probe fails so the
	// denominator of the swap bar does not flap to zero mid-session
	lastSwapTotal float64
}

// NewSystemSource returns a source with the given external-probe timeout.
func NewSystemSource(probeTimeout time.Duration) *SystemSource {
	if probeTimeout <= 0 {
		probeTimeout = 3 * time.Second
	}
	return &SystemSource{ProbeTimeout: probeTimeout}
}

func (s *SystemSource) SampleCPURAMSwap(ctx context.Context) (float64, float64, float64, float64) {
	var cpuPct, ramUsed, swapUsed float64
	swapTotal := s.lastSwapTotal

	if pcts, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false); err == nil && len(pcts) > 0 {
		cpuPct = clampPct(pcts[0])
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		ramUsed = float64(vm.Used) / gb
	}
	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil {
		swapUsed = float64(sw.Used) / gb
		swapTotal = float64(sw.Total) / gb
		s.lastSwapTotal = swapTotal
	}
	return cpuPct, ramUsed, swapUsed, swapTotal
}

func (s *SystemSource) RAMTotalGB(ctx context.Context) float64 {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0
	}
	return float64(vm.Total) / gb
}

var ioregUtilRe = regexp.MustCompile(`"Device Utilization %"\s*=\s*(\d+)`)

func (s *SystemSource) SampleGPU(ctx context.Context) float64 {
	switch runtime.GOOS {
	case "darwin":
		out, err := s.probe(ctx, "ioreg", "-r", "-d", "1", "-w", "0", "-c", "IOAccelerator")
		if err != nil {
			return 0
		}
		m := ioregUtilRe.FindStringSubmatch(out)
		if m == nil {
			return 0
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0
		}
		return clampPct(v)
	case "linux":
		// amdgpu and some Intel parts expose a busy percentage in sysfs.
		for _, card := range []string{"card0", "card1"} {
			data, err := os.ReadFile("/sys/class/drm/" + card + "/device/gpu_busy_percent")
			if err != nil {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
			if err != nil {
				continue
			}
			return clampPct(v)
		}
		return 0
	default:
		return 0
	}
}

var freePctRe = regexp.MustCompile(`free percentage:\s*(\d+(?:\.\d+)?)%`)

func (s *SystemSource) SamplePressure(ctx context.Context) float64 {
	switch runtime.GOOS {
	case "darwin":
		out, err := s.probe(ctx, "memory_pressure")
		if err != nil {
			return 0
		}
		m := freePctRe.FindStringSubmatch(out)
		if m == nil {
			return 0
		}
		free, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0
		}
		return clampPct(100 - free)
	case "linux":
		return linuxPressure("/proc/pressure/memory")
	default:
		return 0
	}
}

// linuxPressure reads the "some avg10" figure from a PSI file.
func linuxPressure(path string) float64 {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "some") {
			continue
		}
		for _, field := range strings.Fields(line) {
			if v, ok := strings.CutPrefix(field, "avg10="); ok {
				pct, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return 0
				}
				return clampPct(pct)
			}
		}
	}
	return 0
}

// probe runs an external command under the probe timeout and returns stdout.
func (s *SystemSource) probe(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.ProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
