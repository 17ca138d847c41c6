package main

import "time"

type Config struct {
	PostgresDSN     string        `env:"POSTGRES_DSN,required=true"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,required=true"`
	BufferSize      int           `env:"BUFFER_SIZE,required=true"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,required=true"`
	MetricInterval  time.Duration `env:"METRIC_INTERVAL,required=true"`
	SelfUserID      string        `env:"SELF_USER_ID,required=true"`
}
