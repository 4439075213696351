package system

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Snapshot is a point-in-time view of the process and the host.
type Snapshot struct {
	RSS           uint64
	ProcessCPU    float64
	Threads       int32
	Goroutines    int
	HostMemUsed   float64
	LogicalCPUs   int
	HeapAllocated uint64
}

// TakeSnapshot gathers process and host statistics. Fields gopsutil cannot
// read on this platform are left zero.
func TakeSnapshot() (Snapshot, error) {
	var s Snapshot
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s.HeapAllocated = ms.HeapAlloc
	s.Goroutines = runtime.NumGoroutine()

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return s, fmt.Errorf("inspect process: %w", err)
	}
	if mi, err := proc.MemoryInfo(); err == nil {
		s.RSS = mi.RSS
	}
	if pct, err := proc.CPUPercent(); err == nil {
		s.ProcessCPU = pct
	}
	if n, err := proc.NumThreads(); err == nil {
		s.Threads = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.HostMemUsed = vm.UsedPercent
	}
	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCPUs = n
	}
	return s, nil
}

func (s Snapshot) String() string {
	return fmt.Sprintf("RSS %.1f MB | heap %.1f MB | CPU %.1f%% | threads %d | goroutines %d | host mem %.1f%% of %d CPUs",
		float64(s.RSS)/(1<<20), float64(s.HeapAllocated)/(1<<20), s.ProcessCPU, s.Threads, s.Goroutines, s.HostMemUsed, s.LogicalCPUs)
}
