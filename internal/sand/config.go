package sand

import "strconv"

// Tie-break modes.
const (
	TieBreakRandom = "random"
	TieBreakHash   = "hash"
)

// Config controls grid geometry and tie-breaking.
type Config struct {
	// CellSize is the pixel edge length of one cell. The grid covers the
	// fixed 1200x800 world, so it also sets the grid dimensions.
	CellSize int
	// Seed feeds the tie-break coin. Zero seeds a random coin from the clock.
	Seed int64
	// TieBreak selects the coin: TieBreakRandom or TieBreakHash.
	TieBreak string
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{CellSize: 4, TieBreak: TieBreakRandom}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Unknown keys and invalid values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["cell_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.CellSize = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["tie_break"]; ok {
		if v == TieBreakRandom || v == TieBreakHash {
			c.TieBreak = v
		}
	}
	return c
}

func (c Config) coin() Coin {
	if c.TieBreak == TieBreakHash {
		return NewHashCoin(c.Seed)
	}
	return NewRandomCoin(c.Seed)
}
