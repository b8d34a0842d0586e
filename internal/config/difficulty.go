package config

import (
	"strings"
	"time"
)

// Difficulty is a named bundle of target lifetime, size and spawn rate.
type Difficulty struct {
	ID           string  `yaml:"id" toml:"id"`
	LifeMS       int     `yaml:"life_ms" toml:"life_ms"`
	Size         float64 `yaml:"size" toml:"size"` // target diameter in px
	SpawnStartMS int     `yaml:"spawn_start_ms" toml:"spawn_start_ms"`
	SpawnMinMS   int     `yaml:"spawn_min_ms" toml:"spawn_min_ms"`
}

// Lifetime returns how long an unclicked target stays alive.
func (d Difficulty) Lifetime() time.Duration {
	return time.Duration(d.LifeMS) * time.Millisecond
}

// SpawnStart returns the initial spawn interval.
func (d Difficulty) SpawnStart() time.Duration {
	return time.Duration(d.SpawnStartMS) * time.Millisecond
}

// SpawnMin returns the floor of the spawn interval.
func (d Difficulty) SpawnMin() time.Duration {
	return time.Duration(d.SpawnMinMS) * time.Millisecond
}

// Label returns the capitalized display name.
func (d Difficulty) Label() string {
	if d.ID == "" {
		return ""
	}
	return strings.ToUpper(d.ID[:1]) + d.ID[1:]
}

func (d Difficulty) valid() bool {
	return d.ID != "" && d.LifeMS > 0 && d.Size > 0 && d.SpawnStartMS > 0 && d.SpawnMinMS > 0
}

// DifficultyNormal is the fallback tier id.
const DifficultyNormal = "normal"

// DefaultDifficulties returns the built-in tiers, easiest first.
func DefaultDifficulties() []Difficulty {
	return []Difficulty{
		{ID: "easy", LifeMS: 2500, Size: 32, SpawnStartMS: 900, SpawnMinMS: 350},
		{ID: "normal", LifeMS: 1800, Size: 24, SpawnStartMS: 700, SpawnMinMS: 250},
		{ID: "hard", LifeMS: 1300, Size: 20, SpawnStartMS: 600, SpawnMinMS: 220},
		{ID: "insane", LifeMS: 1000, Size: 18, SpawnStartMS: 500, SpawnMinMS: 200},
	}
}

// Tier returns the tier with the given id, falling back to normal and then
// to the first tier.
func (s Settings) Tier(id string) Difficulty {
	for _, d := range s.Difficulties {
		if d.ID == id {
			return d
		}
	}
	for _, d := range s.Difficulties {
		if d.ID == DifficultyNormal {
			return d
		}
	}
	if len(s.Difficulties) > 0 {
		return s.Difficulties[0]
	}
	return DefaultDifficulties()[1]
}

// NextTier returns the id of the tier after id, wrapping around.
func (s Settings) NextTier(id string) string {
	tiers := s.Difficulties
	if len(tiers) == 0 {
		tiers = DefaultDifficulties()
	}
	for i, d := range tiers {
		if d.ID == id {
			return tiers[(i+1)%len(tiers)].ID
		}
	}
	return tiers[0].ID
}
