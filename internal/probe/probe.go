// Package probe reads the memory footprint of the running process.
package probe

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
)

// Func returns the current memory reading in bytes.
type Func func() uint64

const (
	KindHeap = "heap"
	KindRSS  = "rss"
)

// Kinds lists the probe names accepted by ByName.
var Kinds = []string{KindHeap, KindRSS}

// Heap reports bytes of allocated heap objects.
func Heap() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

// RSS returns a probe reporting the resident set size of pid.
// When the process cannot be found or its memory cannot be read the
// probe yields 0 so that measurement never aborts a run.
func RSS(logger *zap.Logger, pid int) Func {
	return func() uint64 {
		p, err := process.NewProcess(int32(pid))
		if err != nil {
			warn(logger, "process lookup failed", pid, err)
			return 0
		}
		info, err := p.MemoryInfo()
		if err != nil || info == nil {
			warn(logger, "memory info unavailable", pid, err)
			return 0
		}
		return info.RSS
	}
}

func warn(logger *zap.Logger, msg string, pid int, err error) {
	if logger == nil {
		return
	}
	logger.Warn(msg, zap.Int("pid", pid), zap.Error(err))
}

// ByName resolves a probe kind for the current process.
func ByName(name string, logger *zap.Logger) (Func, error) {
	switch name {
	case "", KindHeap:
		return Heap, nil
	case KindRSS:
		return RSS(logger, os.Getpid()), nil
	default:
		return nil, fmt.Errorf("unknown memory probe %q (want one of %v)", name, Kinds)
	}
}

// Delta converts two readings into a signed byte difference.
func Delta(start, end uint64) int64 {
	return int64(end) - int64(start)
}

// Megabytes expresses a byte count in MiB.
func Megabytes(bytes int64) float64 {
	return float64(bytes) / (1024 * 1024)
}
