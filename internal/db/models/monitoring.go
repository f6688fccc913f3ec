// Package models defines the row types returned by the monitoring
// stored procedures. The procedures themselves live in the relational
// store and are consumed as opaque operations returning tabular rows.
package models

import "time"

// TransactionStatRow is one row of sp_GetTransactionStats.
// Each row describes a dashboard widget with up to three segments.
type TransactionStatRow struct {
	ID     int64  `gorm:"column:Id"`
	Title  string `gorm:"column:Title"`
	Count  int64  `gorm:"column:Count"`
	Type   string `gorm:"column:Type"`
	Label1 string `gorm:"column:Label1"`
	Value1 int64  `gorm:"column:Value1"`
	Color1 string `gorm:"column:Color1"`
	Label2 string `gorm:"column:Label2"`
	Value2 int64  `gorm:"column:Value2"`
	Color2 string `gorm:"column:Color2"`
	Label3 string `gorm:"column:Label3"`
	Value3 int64  `gorm:"column:Value3"`
	Color3 string `gorm:"column:Color3"`
}

// DeviceRow is one row of sp_GetMonitoredDevices.
type DeviceRow struct {
	ID          string    `gorm:"column:Id"          json:"id"`
	Name        string    `gorm:"column:Name"        json:"name"`
	Type        string    `gorm:"column:Type"        json:"type"`
	Status      string    `gorm:"column:Status"      json:"status"`
	LastCheck   time.Time `gorm:"column:LastCheck"   json:"lastCheck"`
	CPUUsage    float64   `gorm:"column:CpuUsage"    json:"cpuUsage"`
	MemoryUsage float64   `gorm:"column:MemoryUsage" json:"memoryUsage"`
	DiskUsage   float64   `gorm:"column:DiskUsage"   json:"diskUsage"`
	Uptime      string    `gorm:"column:Uptime"      json:"uptime"`
}

// HourlyTransactionRow is one row of sp_GetHourlyTransactions.
type HourlyTransactionRow struct {
	Hour  int   `gorm:"column:Hour"  json:"hour"`
	Count int64 `gorm:"column:Count" json:"count"`
}

// SuccessRateRow is the single row of sp_GetSuccessRate.
type SuccessRateRow struct {
	Rate   float64 `gorm:"column:Rate"   json:"rate"`
	Period string  `gorm:"column:Period" json:"period"`
}

// ServiceLevelRow is the single row of sp_GetServiceLevel.
type ServiceLevelRow struct {
	Level  float64 `gorm:"column:Level"  json:"level"`
	Target float64 `gorm:"column:Target" json:"target"`
}

// NewDevice carries the parameters of sp_AddMonitoredDevice.
type NewDevice struct {
	Name        string
	Type        string
	Status      string
	LastCheck   time.Time
	CPUUsage    float64
	MemoryUsage float64
	DiskUsage   float64
	Uptime      string
}
