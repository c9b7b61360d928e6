package identity

import (
	"sync"

	"github.com/brianvoe/gofakeit/v7"
)

// Generator mints a fresh synthetic identity for first-time visitors.
type Generator interface {
	Generate() Identity
}

// FakerGenerator draws a random full name and e-mail address.
type FakerGenerator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
}

// NewFakerGenerator seeds from crypto randomness when seed is 0.
func NewFakerGenerator(seed uint64) *FakerGenerator {
	return &FakerGenerator{faker: gofakeit.New(seed)}
}

func (g *FakerGenerator) Generate() Identity {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Identity{
		Name:  g.faker.Name(),
		Email: g.faker.Email(),
	}
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func() Identity

func (f GeneratorFunc) Generate() Identity {
	return f()
}
