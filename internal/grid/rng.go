package grid

import "math/rand/v2"

// Decision salts keep the independent per-cell rolls decorrelated. Each
// generation-time decision draws from its own stream seeded by
// (cell id, salt), so the order in which cells are visited during a window
// update can never influence the outcome of any roll.
const (
	SaltClusterRoll uint64 = 0x9e3779b97f4a7c15
	SaltFeatureRoll uint64 = 0xbf58476d1ce4e5b9
)

// Stream returns a deterministic random stream for one generation decision.
// PCG is used deliberately: its output sequence for a given seed pair is
// specified, so regenerating an unmodified cell reproduces the same content
// byte for byte on every machine.
func Stream(id, salt uint64) *rand.Rand {
	return rand.New(rand.NewPCG(id, salt))
}

// Roll draws a single uniform value in [0, n) from the decision stream
// identified by (id, salt).
func Roll(id, salt uint64, n int) int {
	return Stream(id, salt).IntN(n)
}
