package manipulator

// Config holds the tunables shared by manipulators and their components.
// Angles are in degrees, sizes in pixels.
type Config struct {
	GridSize       float32 `yaml:"grid_size" toml:"grid_size"`
	RotateSnap     float32 `yaml:"rotate_snap" toml:"rotate_snap"`
	RotateFineSnap float32 `yaml:"rotate_fine_snap" toml:"rotate_fine_snap"`
	ScaleSnap      float32 `yaml:"scale_snap" toml:"scale_snap"`

	HandleSize        float32 `yaml:"handle_size" toml:"handle_size"`
	AxisHideThreshold float32 `yaml:"axis_hide_threshold" toml:"axis_hide_threshold"`
	PivotPickRadius   float32 `yaml:"pivot_pick_radius" toml:"pivot_pick_radius"`
	SelectEpsilon     float32 `yaml:"select_epsilon" toml:"select_epsilon"`
	ArcballRadius     float32 `yaml:"arcball_radius" toml:"arcball_radius"`

	BestDepthEpsilon    float32 `yaml:"best_depth_epsilon" toml:"best_depth_epsilon"`
	BestDistanceEpsilon float32 `yaml:"best_distance_epsilon" toml:"best_distance_epsilon"`
}

func DefaultConfig() Config {
	return Config{
		GridSize:            1,
		RotateSnap:          15,
		RotateFineSnap:      1,
		ScaleSnap:           0.1,
		HandleSize:          64,
		AxisHideThreshold:   0.95,
		PivotPickRadius:     8,
		SelectEpsilon:       8,
		ArcballRadius:       64,
		BestDepthEpsilon:    0.001,
		BestDistanceEpsilon: 0.25,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	fill := func(v *float32, def float32) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&c.GridSize, d.GridSize)
	fill(&c.RotateSnap, d.RotateSnap)
	fill(&c.RotateFineSnap, d.RotateFineSnap)
	fill(&c.ScaleSnap, d.ScaleSnap)
	fill(&c.HandleSize, d.HandleSize)
	fill(&c.AxisHideThreshold, d.AxisHideThreshold)
	fill(&c.PivotPickRadius, d.PivotPickRadius)
	fill(&c.SelectEpsilon, d.SelectEpsilon)
	fill(&c.ArcballRadius, d.ArcballRadius)
	fill(&c.BestDepthEpsilon, d.BestDepthEpsilon)
	fill(&c.BestDistanceEpsilon, d.BestDistanceEpsilon)
	return c
}
