package level

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ParallaxPreset is the default field bundle for one parallax depth level.
type ParallaxPreset struct {
	ScrollSpeedX   float64 `yaml:"scroll_speed_x"`
	ScrollSpeedY   float64 `yaml:"scroll_speed_y"`
	ZOrder         int     `yaml:"z_order"`
	Scale          float64 `yaml:"scale"`
	Opacity        float64 `yaml:"opacity"`
	TileHorizontal bool    `yaml:"tile_horizontal"`
	TileVertical   bool    `yaml:"tile_vertical"`
}

func (p ParallaxPreset) applyTo(l *ParallaxLayerData) {
	l.ScrollSpeedX = p.ScrollSpeedX
	l.ScrollSpeedY = p.ScrollSpeedY
	l.ZOrder = p.ZOrder
	l.Scale = p.Scale
	l.Opacity = p.Opacity
	l.TileHorizontal = p.TileHorizontal
	l.TileVertical = p.TileVertical
}

// LightPreset is the default field bundle for one light type.
type LightPreset struct {
	Radius        float64 `yaml:"radius"`
	FalloffRadius float64 `yaml:"falloff_radius"`
	ColorRed      int     `yaml:"color_red"`
	ColorGreen    int     `yaml:"color_green"`
	ColorBlue     int     `yaml:"color_blue"`
	Intensity     float64 `yaml:"intensity"`
	Flicker       bool    `yaml:"flicker"`
	FlickerSpeed  float64 `yaml:"flicker_speed"`
	FlickerAmount float64 `yaml:"flicker_amount"`
}

func (p LightPreset) applyTo(l *LightSourceData) {
	l.Radius = p.Radius
	l.FalloffRadius = p.FalloffRadius
	l.ColorRed = p.ColorRed
	l.ColorGreen = p.ColorGreen
	l.ColorBlue = p.ColorBlue
	l.Intensity = p.Intensity
	l.Flicker = p.Flicker
	l.FlickerSpeed = p.FlickerSpeed
	l.FlickerAmount = p.FlickerAmount
}

var builtinParallax = map[string]ParallaxPreset{
	"sky":            {ScrollSpeedX: 0.0, ScrollSpeedY: 0.0, ZOrder: -5, Scale: 1.0, Opacity: 1.0, TileHorizontal: true},
	"background":     {ScrollSpeedX: 0.1, ScrollSpeedY: 0.05, ZOrder: -4, Scale: 1.0, Opacity: 1.0, TileHorizontal: true},
	"middleground_3": {ScrollSpeedX: 0.3, ScrollSpeedY: 0.15, ZOrder: -3, Scale: 1.0, Opacity: 1.0, TileHorizontal: true},
	"middleground_2": {ScrollSpeedX: 0.5, ScrollSpeedY: 0.25, ZOrder: -2, Scale: 1.0, Opacity: 1.0, TileHorizontal: true},
	"middleground_1": {ScrollSpeedX: 0.7, ScrollSpeedY: 0.35, ZOrder: -1, Scale: 1.0, Opacity: 1.0, TileHorizontal: true},
	"foreground":     {ScrollSpeedX: 1.25, ScrollSpeedY: 1.0, ZOrder: 2, Scale: 1.0, Opacity: 0.9},
}

var builtinLights = map[string]LightPreset{
	"torch":    {Radius: 120, FalloffRadius: 200, ColorRed: 255, ColorGreen: 160, ColorBlue: 60, Intensity: 1.0, Flicker: true, FlickerSpeed: 8.0, FlickerAmount: 0.15},
	"campfire": {Radius: 180, FalloffRadius: 300, ColorRed: 255, ColorGreen: 130, ColorBlue: 40, Intensity: 1.2, Flicker: true, FlickerSpeed: 6.0, FlickerAmount: 0.2},
	"lantern":  {Radius: 150, FalloffRadius: 225, ColorRed: 255, ColorGreen: 220, ColorBlue: 150, Intensity: 0.9, Flicker: true, FlickerSpeed: 3.0, FlickerAmount: 0.05},
	"candle":   {Radius: 60, FalloffRadius: 110, ColorRed: 255, ColorGreen: 190, ColorBlue: 100, Intensity: 0.7, Flicker: true, FlickerSpeed: 10.0, FlickerAmount: 0.25},
	"crystal":  {Radius: 100, FalloffRadius: 160, ColorRed: 120, ColorGreen: 200, ColorBlue: 255, Intensity: 0.8},
	"magic":    {Radius: 140, FalloffRadius: 210, ColorRed: 200, ColorGreen: 100, ColorBlue: 255, Intensity: 1.1, Flicker: true, FlickerSpeed: 2.0, FlickerAmount: 0.1},
}

// PresetTables maps preset selector names to default field bundles. A table
// is never modified after construction and may be shared between goroutines.
type PresetTables struct {
	parallax map[string]ParallaxPreset
	lights   map[string]LightPreset
}

var defaultPresets = newPresetTables(builtinParallax, builtinLights)

// DefaultPresets returns the built-in tables.
func DefaultPresets() *PresetTables { return defaultPresets }

func newPresetTables(parallax map[string]ParallaxPreset, lights map[string]LightPreset) *PresetTables {
	t := &PresetTables{
		parallax: make(map[string]ParallaxPreset, len(parallax)),
		lights:   make(map[string]LightPreset, len(lights)),
	}
	for k, v := range parallax {
		t.parallax[k] = v
	}
	for k, v := range lights {
		t.lights[k] = v
	}
	return t
}

// Parallax returns the bundle for a depth level.
func (t *PresetTables) Parallax(depthLevel string) (ParallaxPreset, bool) {
	p, ok := t.parallax[depthLevel]
	return p, ok
}

// Light returns the bundle for a light type.
func (t *PresetTables) Light(lightType string) (LightPreset, bool) {
	p, ok := t.lights[lightType]
	return p, ok
}

// ParallaxNames returns the known depth levels, sorted.
func (t *PresetTables) ParallaxNames() []string { return sortedKeys(t.parallax) }

// LightNames returns the known light types, sorted.
func (t *PresetTables) LightNames() []string { return sortedKeys(t.lights) }

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// presetFile is the YAML layout of a preset overlay file.
type presetFile struct {
	Parallax map[string]yaml.Node `yaml:"parallax"`
	Lights   map[string]yaml.Node `yaml:"lights"`
}

// LoadPresets reads a YAML overlay and returns a new table with its bundles
// layered over base. A bundle naming an existing preset only overrides the
// fields it lists.
//
// Precondition: base must not be nil.
// Postcondition: base is unchanged; returns a new table or a non-nil error.
func LoadPresets(path string, base *PresetTables) (*PresetTables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset file %s: %w", path, err)
	}
	return LoadPresetsFromBytes(data, base)
}

// LoadPresetsFromBytes is LoadPresets over in-memory YAML.
//
// Precondition: base must not be nil.
// Postcondition: base is unchanged; returns a new table or a non-nil error.
func LoadPresetsFromBytes(data []byte, base *PresetTables) (*PresetTables, error) {
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing preset YAML: %w", err)
	}

	out := newPresetTables(base.parallax, base.lights)
	for name, node := range file.Parallax {
		p := out.parallax[name]
		if err := node.Decode(&p); err != nil {
			return nil, fmt.Errorf("parallax preset %q: %w", name, err)
		}
		out.parallax[name] = p
	}
	for name, node := range file.Lights {
		p := out.lights[name]
		if err := node.Decode(&p); err != nil {
			return nil, fmt.Errorf("light preset %q: %w", name, err)
		}
		out.lights[name] = p
	}
	return out, nil
}
