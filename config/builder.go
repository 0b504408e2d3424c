package config

import (
	"github.com/jpalmerr/waitforapp"
)

// ToPollConfig converts the file configuration into a [waitforapp.PollConfig].
//
// Durations left unset in the file keep the values from
// [waitforapp.NewPollConfig].
func (c *Config) ToPollConfig() waitforapp.PollConfig {
	pc := waitforapp.NewPollConfig(c.Application)
	pc.Verbose = c.Verbose
	if c.Retry > 0 {
		pc.RetryInterval = c.Retry.Duration()
	}
	if c.Timeout > 0 {
		pc.Timeout = c.Timeout.Duration()
	}
	return pc
}
