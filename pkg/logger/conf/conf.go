// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package conf

type Level string

const (
	TraceLevel Level = "trace"
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
	FatalLevel Level = "fatal"
)

type Formatter string

const (
	JSONFormater    Formatter = "json"
	ConsoleFormater Formatter = "console"
)

// FileConfig enables file output with rotation. When nil, logs go to stderr.
type FileConfig struct {
	Path       string `json:"path" yaml:"path"`
	MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `json:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `json:"compress" yaml:"compress"`
}

type LogConfig struct {
	Level     Level       `json:"level" yaml:"level"`
	Formatter Formatter   `json:"formatter" yaml:"formatter"`
	File      *FileConfig `json:"file" yaml:"file"`
}

func DefaultConfig() *LogConfig {
	return &LogConfig{
		Level:     InfoLevel,
		Formatter: ConsoleFormater,
	}
}

func IsValidFormatter(f Formatter) bool {
	return (f == JSONFormater) ||
		(f == ConsoleFormater)
}
