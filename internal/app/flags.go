package app

import (
	"flag"
	"strconv"

	"falling-sand/internal/sand"
)

// Config represents the command-line parameters shared by the frontends.
type Config struct {
	CellSize int
	TPS      int
	Seed     int64
	TieBreak string
	Addr     string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	d := sand.DefaultConfig()
	return &Config{CellSize: d.CellSize, TPS: 60, TieBreak: d.TieBreak, Addr: ":8080"}
}

// Bind attaches the simulation flags to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.CellSize, "cell-size", c.CellSize, "pixel edge length of one cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "tie-break seed (0 picks one from the clock)")
	fs.StringVar(&c.TieBreak, "tie-break", c.TieBreak, "diagonal tie-break: random or hash")
}

// BindAddr attaches the listen address flag for network frontends.
func (c *Config) BindAddr(fs *flag.FlagSet) {
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address")
}

// Sand converts the flags into a simulation config, dropping invalid values.
func (c *Config) Sand() sand.Config {
	return sand.FromMap(map[string]string{
		"cell_size": strconv.Itoa(c.CellSize),
		"seed":      strconv.FormatInt(c.Seed, 10),
		"tie_break": c.TieBreak,
	})
}
