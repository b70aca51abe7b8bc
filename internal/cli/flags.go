package cli

import "tse2e/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile string
	Processors int
	Seed       int64
	SeedSet    bool
	NameFilter string
	FailFast   bool
	NoSave     bool
	Verbose    bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile: f.ConfigFile,
		Processors: f.Processors,
		Seed:       f.Seed,
		SeedSet:    f.SeedSet,
		NameFilter: f.NameFilter,
		FailFast:   f.FailFast,
		NoSave:     f.NoSave,
		Verbose:    f.Verbose,
	}
}
