// Package health builds process snapshots for the verbose health endpoint.
package health

import "time"

var startTime = time.Now()

// Options selects which daemon details the snapshot includes.
type Options struct {
	Sessions SessionCounter // nil skips session occupancy
}

// SessionCounter reports session table occupancy.
type SessionCounter interface {
	Counts() (open, hosts, panels int)
}

// Snapshot is the verbose health report.
type Snapshot struct {
	Status        string        `json:"status"`
	UptimeSeconds int64         `json:"uptimeSeconds"`
	Goroutines    int           `json:"goroutines"`
	Memory        MemoryInfo    `json:"memory"`
	Runtime       RuntimeInfo   `json:"runtime"`
	Sessions      *SessionsInfo `json:"sessions,omitempty"`
	Timestamp     string        `json:"timestamp"`
}

// MemoryInfo summarizes heap usage.
type MemoryInfo struct {
	AllocMB      float64 `json:"allocMB"`
	TotalAllocMB float64 `json:"totalAllocMB"`
	SysMB        float64 `json:"sysMB"`
	NumGC        uint32  `json:"numGC"`
}

// RuntimeInfo describes the Go runtime and platform.
type RuntimeInfo struct {
	Version string `json:"version"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
	CPUs    int    `json:"cpus"`
}

// SessionsInfo describes session table occupancy.
type SessionsInfo struct {
	Open          int `json:"open"`
	HostsAttached int `json:"hostsAttached"`
	PanelsOpen    int `json:"panelsOpen"`
}
