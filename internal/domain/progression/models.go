package progression

// Level is one row of the level table.
type Level struct {
	Level int     `json:"level" yaml:"level"`
	Title string  `json:"title" yaml:"title"`
	Exp   float64 `json:"exp" yaml:"exp"`
}

// Standing is the level a given amount of experience reaches and how far it
// is towards the next one, in whole percent.
type Standing struct {
	Level    int    `json:"level"`
	Title    string `json:"title"`
	Progress int    `json:"progress"`
}

// Config holds the experience multipliers. An award is
// base * (premium or standard multiplier) * global multiplier.
type Config struct {
	StandardMultiplier float64
	PremiumMultiplier  float64
	GlobalMultiplier   float64
}

func DefaultConfig() Config {
	return Config{
		StandardMultiplier: 1.0,
		PremiumMultiplier:  1.15,
		GlobalMultiplier:   1.0,
	}
}
