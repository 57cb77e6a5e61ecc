package password

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Argon2idParams controls Argon2id hashing cost.
// MemoryKiB is in KiB as required by argon2.IDKey.
type Argon2idParams struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// Policy controls password validation bounds.
type Policy struct {
	MinLength int
	MaxLength int
	// If true, enable a minimal weak-pattern rejection.
	RejectVeryWeak bool
}

// Config is the single configuration surface for this package.
type Config struct {
	Params Argon2idParams
	Policy Policy
}

// DefaultConfig returns a strong baseline. Values can be overridden via env.
func DefaultConfig() Config {
	// Clamp parallelism to [1..4] to keep resource usage predictable in
	// containers regardless of host core count.
	threads := runtime.NumCPU()
	if threads <= 0 {
		threads = 1
	}
	if threads > 4 {
		threads = 4
	}

	return Config{
		Params: Argon2idParams{
			MemoryKiB:   64 * 1024, // 64 MiB
			Iterations:  3,
			Parallelism: uint8(threads), // #nosec G115 -- clamped to [1..4] above; safe conversion.
			SaltLength:  32,             // 256-bit salt minimum
			KeyLength:   32,
		},
		Policy: Policy{
			MinLength:      8,
			MaxLength:      256,
			RejectVeryWeak: false,
		},
	}
}

// FromEnv loads config from environment variables.
//
// Env surface:
//   - QUILL_PASSWORD_MIN_LEN
//   - QUILL_PASSWORD_MAX_LEN
//   - QUILL_PASSWORD_REJECT_VERY_WEAK (true/false)
//   - QUILL_ARGON2_MEMORY_KIB
//   - QUILL_ARGON2_ITERATIONS
//   - QUILL_ARGON2_PARALLELISM
//   - QUILL_ARGON2_SALT_LEN
//   - QUILL_ARGON2_KEY_LEN
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv("QUILL_PASSWORD_MIN_LEN"); ok {
		n, err := atoiBounded(v, 1, 1024)
		if err != nil {
			return Config{}, fmt.Errorf("QUILL_PASSWORD_MIN_LEN: %w", err)
		}
		cfg.Policy.MinLength = n
	}

	if v, ok := os.LookupEnv("QUILL_PASSWORD_MAX_LEN"); ok {
		n, err := atoiBounded(v, 1, 4096)
		if err != nil {
			return Config{}, fmt.Errorf("QUILL_PASSWORD_MAX_LEN: %w", err)
		}
		cfg.Policy.MaxLength = n
	}

	if v, ok := os.LookupEnv("QUILL_PASSWORD_REJECT_VERY_WEAK"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("QUILL_PASSWORD_REJECT_VERY_WEAK: invalid boolean")
		}
		cfg.Policy.RejectVeryWeak = b
	}

	if v, ok := os.LookupEnv("QUILL_ARGON2_MEMORY_KIB"); ok {
		u, err := atou32(v, 8*1024, 1024*1024) // 8 MiB .. 1 GiB
		if err != nil {
			return Config{}, fmt.Errorf("QUILL_ARGON2_MEMORY_KIB: %w", err)
		}
		cfg.Params.MemoryKiB = u
	}

	if v, ok := os.LookupEnv("QUILL_ARGON2_ITERATIONS"); ok {
		u, err := atou32(v, 1, 20)
		if err != nil {
			return Config{}, fmt.Errorf("QUILL_ARGON2_ITERATIONS: %w", err)
		}
		cfg.Params.Iterations = u
	}

	if v, ok := os.LookupEnv("QUILL_ARGON2_PARALLELISM"); ok {
		u, err := atou32(v, 1, 64)
		if err != nil {
			return Config{}, fmt.Errorf("QUILL_ARGON2_PARALLELISM: %w", err)
		}
		if u > math.MaxUint8 {
			return Config{}, fmt.Errorf("QUILL_ARGON2_PARALLELISM: out of range")
		}
		cfg.Params.Parallelism = uint8(u)
	}

	if v, ok := os.LookupEnv("QUILL_ARGON2_SALT_LEN"); ok {
		u, err := atou32(v, 16, 64)
		if err != nil {
			return Config{}, fmt.Errorf("QUILL_ARGON2_SALT_LEN: %w", err)
		}
		cfg.Params.SaltLength = u
	}

	if v, ok := os.LookupEnv("QUILL_ARGON2_KEY_LEN"); ok {
		u, err := atou32(v, 16, 64)
		if err != nil {
			return Config{}, fmt.Errorf("QUILL_ARGON2_KEY_LEN: %w", err)
		}
		cfg.Params.KeyLength = u
	}

	if cfg.Policy.MinLength > cfg.Policy.MaxLength {
		return Config{}, fmt.Errorf(
			"password policy invalid: min_len(%d) > max_len(%d)",
			cfg.Policy.MinLength,
			cfg.Policy.MaxLength,
		)
	}

	return cfg, nil
}

func atoiBounded(s string, minVal, maxVal int) (int, error) {
	i64, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	i := int(i64)
	if i < minVal || i > maxVal {
		return 0, fmt.Errorf("out of range [%d..%d]", minVal, maxVal)
	}
	return i, nil
}

func atou32(s string, minVal, maxVal uint32) (uint32, error) {
	u64, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not an unsigned integer")
	}
	u := uint32(u64)
	if u < minVal || u > maxVal {
		return 0, fmt.Errorf("out of range [%d..%d]", minVal, maxVal)
	}
	return u, nil
}
