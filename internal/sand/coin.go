package sand

import (
	"encoding/binary"
	"hash/fnv"

	"falling-sand/internal/core"
)

// Coin breaks ties when a blocked particle can slide to either diagonal.
// Implementations must be uniform over {left, right}.
type Coin interface {
	Left(row, col int, frame uint64) bool
}

// CoinFunc adapts a plain function to the Coin interface.
type CoinFunc func(row, col int, frame uint64) bool

// Left calls f.
func (f CoinFunc) Left(row, col int, frame uint64) bool { return f(row, col, frame) }

// Fixed coins, mostly useful in tests.
var (
	AlwaysLeft  Coin = CoinFunc(func(int, int, uint64) bool { return true })
	AlwaysRight Coin = CoinFunc(func(int, int, uint64) bool { return false })
)

// RandomCoin draws an independent bit per decision from a seeded PCG.
type RandomCoin struct {
	rng *core.RNG
}

// NewRandomCoin returns a RandomCoin seeded with seed, or from the clock when
// seed is zero.
func NewRandomCoin(seed int64) *RandomCoin {
	return &RandomCoin{rng: core.NewRNG(seed)}
}

// Left ignores the position and returns the next random bit.
func (c *RandomCoin) Left(int, int, uint64) bool { return c.rng.Bool() }

// HashCoin derives the bit from a hash of the position, the frame number and
// a seed. Replaying the same frames yields the same choices.
type HashCoin struct {
	seed uint64
}

// NewHashCoin returns a HashCoin mixing in seed.
func NewHashCoin(seed int64) HashCoin { return HashCoin{seed: uint64(seed)} }

// Left reports the top bit of the FNV-1a hash of (seed, row, col, frame).
// The low bits of FNV-1a only carry input parity, so they are not used.
func (c HashCoin) Left(row, col int, frame uint64) bool {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:], c.seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(row))
	binary.LittleEndian.PutUint64(buf[16:], uint64(col))
	binary.LittleEndian.PutUint64(buf[24:], frame)
	h := fnv.New64a()
	h.Write(buf[:])
	return h.Sum64()>>63 == 0
}
