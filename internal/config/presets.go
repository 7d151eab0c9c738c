package config

// Wall presets tune the feel of the simulation for common event setups.
// A preset is a complete config; CLI flags still override individual fields.
func GetPreset(name string) *Config {
	cfg := DefaultConfig()
	switch name {
	case "calm":
		// Slow drift for lobbies: big tiles, heavy damping, barely-there jitter.
		cfg.SizeTier = "large"
		cfg.Physics.Damping = 0.96
		cfg.Physics.JitterSpeed = 0.1
		cfg.Physics.SpawnSpeed = 0.2
	case "lively":
		cfg.Physics.Damping = 0.995
		cfg.Physics.JitterSpeed = 0.45
		cfg.Physics.SpawnSpeed = 1.0
	case "crowded":
		// Many small tiles refreshing quickly, for busy party walls.
		cfg.SizeTier = "small"
		cfg.SyncSeconds = 5
		cfg.Physics.SeparationImpulse = 0.2
	default:
		return nil
	}
	return cfg
}

func ListPresets() []string {
	return []string{"calm", "crowded", "lively"}
}
