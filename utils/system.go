package utils

import (
	"fmt"
	"runtime"
)

// GetMemUsage summarizes the Go heap of the running process
func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc = %v MiB HeapInuse = %v MiB Sys = %v MiB NumGC = %v",
		bToMb(m.Alloc), bToMb(m.HeapInuse), bToMb(m.Sys), m.NumGC)
}
