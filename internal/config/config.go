package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by AGORA_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("AGORA_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// DatabaseURL returns the Postgres connection string. Empty means run
// without persistence.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// LLMProvider returns the configured text provider.
// Defaults to "none" if not set, which runs the simulation on
// deterministic placeholder prose alone.
// Valid values: openai, none, mock
func LLMProvider() string {
	p := os.Getenv("LLM_PROVIDER")
	if p == "" {
		return "none"
	}
	return p
}

// Agents returns the initial population size.
// Defaults to 20 if not set.
func Agents() int {
	n, err := strconv.Atoi(os.Getenv("SIM_AGENTS"))
	if err != nil || n <= 0 {
		return 20
	}
	return n
}

// BeliefDim returns the belief vector dimensionality.
// Defaults to 50 if not set.
func BeliefDim() int {
	d, err := strconv.Atoi(os.Getenv("SIM_BELIEF_DIM"))
	if err != nil || d <= 0 {
		return 50
	}
	return d
}

// Steps returns the number of simulation ticks to run: 30 years at one
// tick per month by default.
func Steps() int {
	n, err := strconv.Atoi(os.Getenv("SIM_STEPS"))
	if err != nil || n <= 0 {
		return 360
	}
	return n
}

// Seed returns the random seed for the simulation. Zero (the default)
// means derive a fresh seed at startup.
func Seed() uint64 {
	s, err := strconv.ParseUint(os.Getenv("SIM_SEED"), 10, 64)
	if err != nil {
		return 0
	}
	return s
}

// StepDelayMS returns the pause between ticks in milliseconds, giving
// API consumers time to observe intermediate states. Zero disables the
// pause. Defaults to 100.
func StepDelayMS() int {
	ms, err := strconv.Atoi(os.Getenv("SIM_STEP_DELAY_MS"))
	if err != nil || ms < 0 {
		return 100
	}
	return ms
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
