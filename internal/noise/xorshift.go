package noise

// fallbackSeed replaces a zero seed, which would lock xorshift at zero forever
const fallbackSeed uint32 = 0xDEADBEEF

// Xorshift32 is a small deterministic generator used for grain, dots and hiss.
// The zero value is not usable; call Seed first.
type Xorshift32 struct {
	state uint32
}

// NewXorshift32 creates a generator seeded with seed
func NewXorshift32(seed uint32) *Xorshift32 {
	x := &Xorshift32{}
	x.Seed(seed)
	return x
}

// Seed resets the generator and mixes the new state
func (x *Xorshift32) Seed(seed uint32) {
	if seed == 0 {
		seed = fallbackSeed
	}
	x.state = seed

	// Discard the first outputs, they are too close to the seed
	x.Next()
	x.Next()
	x.Next()
}

// Next advances the generator and returns the new state
func (x *Xorshift32) Next() uint32 {
	s := x.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	x.state = s
	return s
}

// Float01 returns a value in [0, 1] with 16 bits of resolution
func (x *Xorshift32) Float01() float32 {
	return float32(x.Next()&0xFFFF) / 65535.0
}

// IntRange returns a value in [0, max), or 0 when max <= 0
func (x *Xorshift32) IntRange(max int) int {
	if max <= 0 {
		return 0
	}
	return int(uint64(x.Next()) % uint64(max))
}

// State returns the current internal state
func (x *Xorshift32) State() uint32 {
	return x.state
}
