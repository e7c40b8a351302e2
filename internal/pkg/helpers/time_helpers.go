package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses durationStr, falling back to def when it is empty or
// malformed. Config values reach this before the logger is configured, so it
// logs through the global logger.
func ParseDuration(durationStr string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("value", durationStr).Dur("fallback", def).
			Msg("Unparseable duration, using fallback")
		return def
	}
	return d
}
