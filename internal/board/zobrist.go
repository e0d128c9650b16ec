package board

// Zobrist keys for hashing positions. The hash only picks a transposition
// table slot; the exact Key is compared on probe.
var (
	zobristStone      [2][NumSquares]uint64
	zobristSideToMove uint64 // XOR when Side2 is to move
)

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234) // Fixed seed

	for side := 0; side < 2; side++ {
		for sq := Square(0); sq < NoSquare; sq++ {
			zobristStone[side][sq] = rng.next()
		}
	}
	zobristSideToMove = rng.next()
}
