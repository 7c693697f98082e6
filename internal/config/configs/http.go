package configs

import "time"

// HTTP defines configuration for the HTTP server. Port selects the TCP
// port the server binds to. AllowedOrigins enables CORS for the listed
// origins; leave it empty when the API is only called server to server.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port              uint16        `env:"PORT" envDefault:"8080"`
	AllowedOrigins    []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"10s"`
	// ShutdownTimeout bounds graceful shutdown after a termination signal.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
