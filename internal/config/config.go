// Package config holds the constants table of the playground (game ids,
// limits, difficulty tiers, tuning) and loads the YAML/TOML settings file.
package config

// GameID identifies a mini-game. It doubles as the key in the best-scores
// record and in the run history table.
type GameID string

const (
	GameAim    GameID = "aim"
	GameMemory GameID = "mem"
)

// Storage keys of the two persisted records.
const (
	KeyScores      = "fp_scores"
	KeySensitivity = "fp_senscfg"
)

// Duration bounds in seconds.
const (
	DefaultDuration = 30
	MinDuration     = 10
	MaxDuration     = 180
)

// DurationDeltas are the header adjustment steps in seconds.
var DurationDeltas = []int{-10, -5, 5, 10}

// Limit is an inclusive numeric range with an input step.
type Limit struct {
	Min, Max, Step float64
}

// Sensitivity input limits.
var (
	DPILimit  = Limit{Min: 50, Max: 32000, Step: 50}
	SensLimit = Limit{Min: 0.01, Max: 10, Step: 0.01}
)

// Sensitivity defaults.
const (
	DefaultDPI  = 800
	DefaultSens = 1.0
)

// GameProfile is a shooter whose sensitivity scale the player mirrors.
type GameProfile struct {
	ID   string
	Name string
	Yaw  float64 // degrees per count at sens 1
}

// GameProfiles lists the supported profiles; the first one is the default.
var GameProfiles = []GameProfile{
	{ID: "cs2", Name: "CS2", Yaw: 0.022},
	{ID: "val", Name: "Valorant", Yaw: 0.07},
}

// ProfileByID returns the profile with the given id, or the default one.
func ProfileByID(id string) GameProfile {
	for _, p := range GameProfiles {
		if p.ID == id {
			return p
		}
	}
	return GameProfiles[0]
}

// NextProfile returns the id following id in GameProfiles, wrapping around.
func NextProfile(id string) string {
	for i, p := range GameProfiles {
		if p.ID == id {
			return GameProfiles[(i+1)%len(GameProfiles)].ID
		}
	}
	return GameProfiles[0].ID
}
