package model

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	game_log "github.com/ingyamilmolinar/foodmatch/internal/log"
)

// Policy selects how a round's items and order are chosen.
type Policy int

const (
	PolicyFixed Policy = iota
	PolicyRandom
)

func (p Policy) String() string {
	switch p {
	case PolicyFixed:
		return "fixed"
	case PolicyRandom:
		return "random"
	default:
		return "unknown"
	}
}

// ParsePolicy accepts "fixed" and "random" (or "randomized").
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed":
		return PolicyFixed, nil
	case "random", "randomized":
		return PolicyRandom, nil
	}
	return 0, configErrorf("unknown pairing policy %q", s)
}

const DefaultMatchesNeeded = 5

var (
	defaultImageOrder = []ItemID{5, 3, 1, 2, 4}
	defaultAudioOrder = []ItemID{1, 2, 3, 4, 5}
)

type SelectorConfig struct {
	Policy        Policy
	MatchesNeeded int
	Catalog       Catalog

	// Fixed policy orders; nil uses the shipped layout.
	ImageOrder []ItemID
	AudioOrder []ItemID

	// ShuffleTiles permutes the image row display columns (random policy only).
	ShuffleTiles bool
	// Seed for the random policy; 0 seeds from the clock.
	Seed uint64
}

// Selector builds rounds. It is created once and asked for a new round on
// every start or restart.
type Selector struct {
	cfg    SelectorConfig
	rng    *rand.Rand
	newID  func() string
	logger *game_log.Logger
}

// NewSelector validates cfg and returns a ConfigurationError if no round can
// be built from it.
func NewSelector(cfg SelectorConfig, logger *game_log.Logger) (*Selector, error) {
	if cfg.MatchesNeeded == 0 {
		cfg.MatchesNeeded = DefaultMatchesNeeded
	}
	if cfg.Catalog == nil {
		cfg.Catalog = DefaultCatalog()
	}
	if cfg.ImageOrder == nil {
		cfg.ImageOrder = defaultImageOrder
	}
	if cfg.AudioOrder == nil {
		cfg.AudioOrder = defaultAudioOrder
	}
	if cfg.MatchesNeeded < 1 {
		return nil, configErrorf("matches needed must be positive, got %d", cfg.MatchesNeeded)
	}
	if len(cfg.Catalog) < cfg.MatchesNeeded {
		return nil, configErrorf("catalog has %d items, round needs %d", len(cfg.Catalog), cfg.MatchesNeeded)
	}
	if cfg.Policy == PolicyFixed {
		if err := validateFixed(cfg); err != nil {
			return nil, err
		}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Selector{
		cfg:    cfg,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		newID:  uuid.NewString,
		logger: logger.Tagged("PAIRING"),
	}, nil
}

func validateFixed(cfg SelectorConfig) error {
	n := cfg.MatchesNeeded
	if len(cfg.ImageOrder) < n {
		return configErrorf("fixed image order lists %d items, round needs %d", len(cfg.ImageOrder), n)
	}
	used := map[ItemID]bool{}
	for _, id := range cfg.ImageOrder[:n] {
		if _, ok := cfg.Catalog.Lookup(id); !ok {
			return configErrorf("fixed image order names unknown item %d", id)
		}
		if used[id] {
			return configErrorf("fixed image order repeats item %d", id)
		}
		used[id] = true
	}
	found := 0
	for _, id := range cfg.AudioOrder {
		if used[id] {
			found++
		}
	}
	if found != n {
		return configErrorf("fixed audio order covers %d of %d round items", found, n)
	}
	return nil
}

// NewRound builds a fresh round according to the configured policy.
func (s *Selector) NewRound() (*Round, error) {
	var r *Round
	switch s.cfg.Policy {
	case PolicyFixed:
		r = s.fixedRound()
	case PolicyRandom:
		r = s.randomRound()
	default:
		return nil, configErrorf("unknown pairing policy %d", s.cfg.Policy)
	}
	r.ID = s.newID()
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("pairing %s: %w", s.cfg.Policy, err)
	}
	s.logger.Infof("round %s: policy=%s images=%v audios=%v map=%v",
		r.ID, s.cfg.Policy, names(r.Images), names(r.Audios), r.ImageToAudio)
	return r, nil
}

// Items lists every item a round from this selector may contain.
func (s *Selector) Items() []Item {
	if s.cfg.Policy == PolicyRandom {
		return append([]Item(nil), s.cfg.Catalog...)
	}
	out := make([]Item, 0, s.cfg.MatchesNeeded)
	for _, id := range s.cfg.ImageOrder[:s.cfg.MatchesNeeded] {
		it, _ := s.cfg.Catalog.Lookup(id)
		out = append(out, it)
	}
	return out
}

func (s *Selector) fixedRound() *Round {
	n := s.cfg.MatchesNeeded
	r := &Round{}
	inRound := map[ItemID]bool{}
	for _, id := range s.cfg.ImageOrder[:n] {
		it, _ := s.cfg.Catalog.Lookup(id)
		r.Images = append(r.Images, it)
		inRound[id] = true
	}
	for _, id := range s.cfg.AudioOrder {
		if inRound[id] {
			it, _ := s.cfg.Catalog.Lookup(id)
			r.Audios = append(r.Audios, it)
		}
	}
	r.ImageToAudio = mapByIdentity(r.Images, r.Audios)
	r.Columns = identity(n)
	return r
}

func (s *Selector) randomRound() *Round {
	n := s.cfg.MatchesNeeded
	pool := append(Catalog(nil), s.cfg.Catalog...)
	// Partial Fisher–Yates: the first n entries become a uniform sample in
	// uniform random order.
	for i := 0; i < n; i++ {
		j := i + s.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	r := &Round{Images: pool[:n:n]}
	r.Audios = append([]Item(nil), r.Images...)
	s.shuffle(len(r.Audios), func(i, j int) { r.Audios[i], r.Audios[j] = r.Audios[j], r.Audios[i] })
	r.ImageToAudio = mapByIdentity(r.Images, r.Audios)
	r.Columns = identity(n)
	if s.cfg.ShuffleTiles {
		s.shuffle(n, func(i, j int) { r.Columns[i], r.Columns[j] = r.Columns[j], r.Columns[i] })
	}
	return r
}

// shuffle is a Fisher–Yates permutation; every ordering is equally likely.
func (s *Selector) shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, s.rng.IntN(i+1))
	}
}

func mapByIdentity(images, audios []Item) []int {
	m := make([]int, len(images))
	for i, img := range images {
		m[i] = -1
		for j, a := range audios {
			if a.ID == img.ID {
				m[i] = j
				break
			}
		}
	}
	return m
}

func identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}
