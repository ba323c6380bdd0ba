// Package words provides the typing vocabularies and random word selection.
package words

import (
	"fmt"
	"math/rand"
	"time"
)

// Easy holds short everyday words for the easy difficulty.
var Easy = []string{
	"cat", "dog", "sun", "run", "fun", "car", "big", "red", "hot", "cold",
	"yes", "no", "go", "up", "down", "happy", "fast", "slow", "good", "bad",
	"help", "jump", "play", "read", "sing", "walk", "talk", "look", "find", "make",
}

// Normal holds medium-length words added on the normal difficulty.
var Normal = []string{
	"house", "water", "computer", "keyboard", "mouse", "typing", "racing", "speed",
	"challenge", "victory", "practice", "improve", "accuracy", "champion", "winner",
	"puzzle", "adventure", "journey", "explore", "discover", "create", "design",
	"develop", "progress", "achieve", "succeed", "complete", "master", "expert",
}

// Hard holds long words added on the hard difficulty.
var Hard = []string{
	"extraordinary", "magnificent", "programming", "development", "architecture",
	"infrastructure", "optimization", "performance", "complexity", "algorithm",
	"implementation", "visualization", "transformation", "revolutionary",
	"technological", "sophisticated", "comprehensive",
	"professional", "responsibility", "concentration", "determination",
	"perseverance", "accomplishment", "achievement", "excellence",
}

// Provider selects words uniformly at random from a fixed vocabulary.
// Repeats are allowed; no history is tracked.
type Provider struct {
	rnd   *rand.Rand
	vocab []string
}

// NewProvider builds a Provider seeded with the current time.
// An empty vocabulary is a configuration error.
func NewProvider(vocab []string) (*Provider, error) {
	return NewProviderSeeded(vocab, time.Now().UnixNano())
}

// NewProviderSeeded builds a Provider with an explicit seed for deterministic tests.
func NewProviderSeeded(vocab []string, seed int64) (*Provider, error) {
	if len(vocab) == 0 {
		return nil, fmt.Errorf("vocabulary is empty")
	}
	return &Provider{
		rnd:   rand.New(rand.NewSource(seed)),
		vocab: vocab,
	}, nil
}

// Next returns a random word from the vocabulary.
func (p *Provider) Next() string {
	return p.vocab[p.rnd.Intn(len(p.vocab))]
}

// Size returns the vocabulary size.
func (p *Provider) Size() int {
	return len(p.vocab)
}
