package service

import (
	"runtime"
	"time"

	"nubenet/internal/db"
	"nubenet/internal/model"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// MonitorSnapshot 主机资源快照，仅用于展示
type MonitorSnapshot struct {
	CPUPercent  float64 `json:"cpu_percent"`
	MemTotal    uint64  `json:"mem_total"`
	MemUsed     uint64  `json:"mem_used"`
	MemPercent  float64 `json:"mem_percent"`
	DiskTotal   uint64  `json:"disk_total"`
	DiskUsed    uint64  `json:"disk_used"`
	DiskPercent float64 `json:"disk_percent"`
}

// GetMonitorSnapshot 采样主机 CPU/内存/磁盘。
// CPU 采样阻塞约 1 秒，仅供低流量的运维页面使用。
func GetMonitorSnapshot() (*MonitorSnapshot, error) {
	cpuPercents, err := cpu.Percent(time.Second, false)
	if err != nil {
		return nil, NewInternalError("采集 CPU 信息失败")
	}
	cpuPercent := 0.0
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, NewInternalError("采集内存信息失败")
	}

	du, err := disk.Usage("/")
	if err != nil {
		return nil, NewInternalError("采集磁盘信息失败")
	}

	return &MonitorSnapshot{
		CPUPercent:  cpuPercent,
		MemTotal:    vm.Total,
		MemUsed:     vm.Used,
		MemPercent:  vm.UsedPercent,
		DiskTotal:   du.Total,
		DiskUsed:    du.Used,
		DiskPercent: du.UsedPercent,
	}, nil
}

type SystemInfo struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
}

type ServerStats struct {
	UserCount    int64      `json:"user_count"`
	FileCount    int64      `json:"file_count"`
	MessageCount int64      `json:"message_count"`
	SystemInfo   SystemInfo `json:"system_info"`
}

// AdminGetServerStats 获取后台仪表盘统计数据。
func AdminGetServerStats() (*ServerStats, error) {
	var userCount int64
	var fileCount int64
	var messageCount int64

	if err := db.DB.Model(&model.User{}).Count(&userCount).Error; err != nil {
		return nil, NewInternalError("获取统计数据失败")
	}
	if err := db.DB.Model(&model.File{}).Count(&fileCount).Error; err != nil {
		return nil, NewInternalError("获取统计数据失败")
	}
	if err := db.DB.Model(&model.Message{}).Count(&messageCount).Error; err != nil {
		return nil, NewInternalError("获取统计数据失败")
	}

	return &ServerStats{
		UserCount:    userCount,
		FileCount:    fileCount,
		MessageCount: messageCount,
		SystemInfo: SystemInfo{
			OS:           runtime.GOOS,
			Arch:         runtime.GOARCH,
			GoVersion:    runtime.Version(),
			NumCPU:       runtime.NumCPU(),
			NumGoroutine: runtime.NumGoroutine(),
		},
	}, nil
}
