package cmd

// Config carries the flat application configuration read from the
// environment at startup.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// EnableDeadlineWatch toggles the overdue-order watch job.
	EnableDeadlineWatch bool
}
