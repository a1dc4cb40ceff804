package cmd

import "time"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPPort string
	Storage  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	MockLatency    time.Duration
	MockFailEvery  int
	MockSeed       uint64
	MockOrderCount int
	SeedFixtures   bool

	StatsReportSchedule string
	OTelTracesStdout    bool
	OTLPEndpoint        string
}
