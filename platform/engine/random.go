package engine

import "github.com/DedS3t/monopoly-server/app/models"

// The generator state lives on GameState so that dice and shuffles are a
// pure function of the state, and a snapshot resumes exactly where it left
// off. splitmix64.
func nextRand(g *models.GameState) uint64 {
	g.RNG += 0x9e3779b97f4a7c15
	z := g.RNG
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func intn(g *models.GameState, n int) int {
	return int(nextRand(g) % uint64(n))
}

func shuffle(g *models.GameState, ids []string) []string {
	out := append([]string(nil), ids...)
	for i := len(out) - 1; i > 0; i-- {
		j := intn(g, i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Roller produces the two dice for a roll.
type Roller interface {
	Roll(g *models.GameState) (int, int)
}

// SeededRoller draws dice from the game's own generator.
type SeededRoller struct{}

func (SeededRoller) Roll(g *models.GameState) (int, int) {
	return intn(g, 6) + 1, intn(g, 6) + 1
}
