package cmd

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// defaultWorkers returns the number of logical CPUs
func defaultWorkers() int {
	count, err := cpu.Counts(true)
	if err != nil || count < 1 {
		logger.Debugf("cpu count unavailable (%v), using runtime.NumCPU", err)
		return runtime.NumCPU()
	}
	return count
}

// logHostSummary reports the CPU model and memory of the machine at Info level
func logHostSummary() {
	model := "unknown CPU"
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		model = info[0].ModelName
	}

	memory := "unknown"
	if vm, err := mem.VirtualMemory(); err == nil {
		memory = formatBytes(vm.Total)
	}

	logger.Infof("host: %s, %d logical CPUs, %s RAM", model, defaultWorkers(), memory)
}

// formatBytes renders a byte count with a binary unit
func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
