// Package testutils holds test data generators and container helpers shared
// by package tests.
package testutils

import (
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// IntegrationEnvVar enables tests that start containers.
const IntegrationEnvVar = "IMPICCATO_INTEGRATION"

// RequireIntegration skips t unless integration tests were requested.
func RequireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv(IntegrationEnvVar) != "1" {
		t.Skipf("set %s=1 to run integration tests", IntegrationEnvVar)
	}
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

// Player is a generated chat member.
type Player struct {
	ID   string
	Name string
}

// TestDataGenerator provides methods to create test data.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s)), seed: s}
}

// Seed returns the seed the generator was built with.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// GeneratePlayer returns a player with a snowflake-shaped id.
func (g *TestDataGenerator) GeneratePlayer() Player {
	return Player{
		ID:   strconv.FormatUint(g.faker.Uint64()>>1|1<<56, 10),
		Name: g.faker.FirstName(),
	}
}

// GeneratePlayers returns n distinct players.
func (g *TestDataGenerator) GeneratePlayers(n int) []Player {
	seen := make(map[string]bool, n)
	players := make([]Player, 0, n)
	for len(players) < n {
		p := g.GeneratePlayer()
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		players = append(players, p)
	}
	return players
}

// GeneratePoints returns a ledger delta in [-1, 5].
func (g *TestDataGenerator) GeneratePoints() int {
	return g.faker.IntRange(-1, 5)
}
