// Package level provides the typed level definition model and its binding to
// and from level files.
package level

import (
	"errors"
	"fmt"
)

// CommentKey marks an array entry as documentation. Entries carrying it are
// never bound.
const CommentKey = "_comment"

// FalloffMultiplier derives a light's falloff radius from an explicitly
// overridden radius when no explicit falloff is given.
const FalloffMultiplier = 1.5

// PlatformData is a static terrain piece.
type PlatformData struct {
	X, Y       int
	SpritePath string
	// Width and Height of 0 mean "use the sprite's size".
	Width, Height int
	Solid         bool
	TintRed       int
	TintGreen     int
	TintBlue      int
}

// NewPlatformData returns a platform with every field at its default.
func NewPlatformData() PlatformData {
	return PlatformData{Solid: true}
}

// HasTint reports whether any tint channel is set.
func (p PlatformData) HasTint() bool {
	return p.TintRed != 0 || p.TintGreen != 0 || p.TintBlue != 0
}

// ItemData is a collectible placement.
type ItemData struct {
	X, Y       int
	ItemName   string
	ItemID     string
	ItemType   string
	SpritePath string
	Value      int
	StackCount int
}

// NewItemData returns an item with every field at its default.
func NewItemData() ItemData {
	return ItemData{ItemType: "collectible", Value: 1, StackCount: 1}
}

// TriggerData is a rectangular zone that fires an action when entered.
type TriggerData struct {
	X, Y          int
	Width, Height int
	TriggerType   string
	// Target is interpreted by TriggerType: a level path, cutscene id, etc.
	Target  string
	OneShot bool
}

// NewTriggerData returns a trigger with every field at its default.
func NewTriggerData() TriggerData {
	return TriggerData{Width: 64, Height: 64, TriggerType: "levelExit"}
}

// BlockData is a destructible block.
type BlockData struct {
	X, Y       int
	BlockType  string
	Breakable  bool
	HitPoints  int
	DropItemID string
	MaskRed    int
	MaskGreen  int
	MaskBlue   int
}

// NewBlockData returns a block with every field at its default.
func NewBlockData() BlockData {
	return BlockData{BlockType: "dirt", Breakable: true, HitPoints: 1}
}

// HasMask reports whether any color mask channel is set.
func (b BlockData) HasMask() bool {
	return b.MaskRed != 0 || b.MaskGreen != 0 || b.MaskBlue != 0
}

// MovingBlockData is a platform that travels between its start and end
// points, or along Waypoints when set.
type MovingBlockData struct {
	X, Y        int
	BlockType   string
	EndX, EndY  int
	Speed       float64
	PauseFrames int
	Pattern     string
	// Waypoints is a "x,y;x,y;..." list; empty means a straight start-end path.
	Waypoints string
}

// NewMovingBlockData returns a moving block with every field at its default.
func NewMovingBlockData() MovingBlockData {
	return MovingBlockData{BlockType: "stone", Speed: 2.0, PauseFrames: 30, Pattern: "linear"}
}

// MobData is a creature spawn point.
type MobData struct {
	X, Y        int
	MobType     string
	Behavior    string
	SpritePath  string
	Health      int
	Damage      int
	PatrolRange int
	FacingRight bool
	SpawnID     string
}

// NewMobData returns a mob with every field at its default.
func NewMobData() MobData {
	return MobData{
		MobType:     "zombie",
		Behavior:    "wander",
		Health:      100,
		Damage:      10,
		PatrolRange: 200,
		FacingRight: true,
	}
}

// DoorData is an interactive door. KeyItemID references ItemData.ItemID.
type DoorData struct {
	X, Y          int
	DoorID        string
	Width, Height int
	Locked        bool
	KeyItemID     string
	TargetLevel   string
	SpritePath    string
}

// NewDoorData returns a door with every field at its default.
func NewDoorData() DoorData {
	return DoorData{Width: 64, Height: 128}
}

// ButtonData is a switch. LinkedDoors holds DoorData.DoorID values.
type ButtonData struct {
	X, Y        int
	ButtonID    string
	LinkedDoors []string
	Activation  string
	SpritePath  string
}

// NewButtonData returns a button with every field at its default.
func NewButtonData() ButtonData {
	return ButtonData{LinkedDoors: []string{}, Activation: "toggle"}
}

// VaultData is a lootable container.
type VaultData struct {
	X, Y      int
	VaultID   string
	VaultType string
	Locked    bool
	KeyItemID string
	LootTable string
	Capacity  int
}

// NewVaultData returns a vault with every field at its default.
func NewVaultData() VaultData {
	return VaultData{VaultType: "chest", Capacity: 9}
}

// FrameData is one still of a cutscene. Text is optional.
type FrameData struct {
	ImagePath string
	Text      string
}

// CutsceneData is a short sequence of frames played when the player reaches
// the trigger point.
type CutsceneData struct {
	CutsceneID string
	TriggerX   int
	TriggerY   int
	PlayOnce   bool
	Frames     []FrameData
}

// NewCutsceneData returns a cutscene with every field at its default.
func NewCutsceneData() CutsceneData {
	return CutsceneData{PlayOnce: true, Frames: []FrameData{}}
}

// ParallaxLayerData is a background or foreground image scrolling at its
// own rate. DepthLevel selects a preset from the parallax table.
type ParallaxLayerData struct {
	Name           string
	ImagePath      string
	DepthLevel     string
	ScrollSpeedX   float64
	ScrollSpeedY   float64
	ZOrder         int
	Scale          float64
	Opacity        float64
	TileHorizontal bool
	TileVertical   bool
	OffsetX        int
	OffsetY        int
}

// DefaultDepthLevel is the depth level a parallax layer starts with.
const DefaultDepthLevel = "middleground_1"

// NewParallaxLayerData returns a layer whose defaults equal the
// DefaultDepthLevel preset.
func NewParallaxLayerData() ParallaxLayerData {
	l := ParallaxLayerData{DepthLevel: DefaultDepthLevel}
	builtinParallax[DefaultDepthLevel].applyTo(&l)
	return l
}

// LightSourceData is a point light. LightType selects a preset from the
// light table.
type LightSourceData struct {
	X, Y          int
	Name          string
	LightType     string
	Radius        float64
	FalloffRadius float64
	ColorRed      int
	ColorGreen    int
	ColorBlue     int
	Intensity     float64
	Flicker       bool
	FlickerSpeed  float64
	FlickerAmount float64
	Enabled       bool
}

// DefaultLightType names no preset; lights of this type use only explicit
// fields.
const DefaultLightType = "custom"

// NewLightSourceData returns a light with every field at its default.
func NewLightSourceData() LightSourceData {
	return LightSourceData{
		LightType:     DefaultLightType,
		Radius:        100.0,
		FalloffRadius: 150.0,
		ColorRed:      255,
		ColorGreen:    255,
		ColorBlue:     255,
		Intensity:     1.0,
		Enabled:       true,
	}
}

// LevelData is the typed form of one level file. Collections are never nil
// and keep document order.
type LevelData struct {
	Name           string
	Description    string
	BackgroundPath string
	MusicPath      string
	TilesetPath    string
	// NextLevel is the path of the level loaded after this one is completed.
	NextLevel string

	LevelWidth            int
	LevelHeight           int
	GroundY               int
	PlayerSpawnX          int
	PlayerSpawnY          int
	ScrollingEnabled      bool
	VerticalScrollEnabled bool
	VerticalMargin        int
	Gravity               float64

	NightMode          bool
	NightDarkness      float64
	AmbientLevel       float64
	PlayerLightEnabled bool
	PlayerLightRadius  float64
	PlayerLightFalloff float64

	Platforms      []PlatformData
	Items          []ItemData
	Triggers       []TriggerData
	Blocks         []BlockData
	MovingBlocks   []MovingBlockData
	Mobs           []MobData
	Doors          []DoorData
	Buttons        []ButtonData
	Vaults         []VaultData
	Cutscenes      []CutsceneData
	ParallaxLayers []ParallaxLayerData
	LightSources   []LightSourceData
}

// NewLevelData returns a level with every scalar at its default and every
// collection empty.
//
// Postcondition: No collection is nil.
func NewLevelData() *LevelData {
	return &LevelData{
		Name:               "Untitled",
		LevelWidth:         1920,
		LevelHeight:        1080,
		GroundY:            920,
		PlayerSpawnX:       200,
		PlayerSpawnY:       600,
		Gravity:            0.5,
		NightDarkness:      0.8,
		AmbientLevel:       0.15,
		PlayerLightRadius:  100.0,
		PlayerLightFalloff: 150.0,

		Platforms:      []PlatformData{},
		Items:          []ItemData{},
		Triggers:       []TriggerData{},
		Blocks:         []BlockData{},
		MovingBlocks:   []MovingBlockData{},
		Mobs:           []MobData{},
		Doors:          []DoorData{},
		Buttons:        []ButtonData{},
		Vaults:         []VaultData{},
		Cutscenes:      []CutsceneData{},
		ParallaxLayers: []ParallaxLayerData{},
		LightSources:   []LightSourceData{},
	}
}

// EntityCount returns the total number of sub-entities across all
// collections.
func (l *LevelData) EntityCount() int {
	return len(l.Platforms) + len(l.Items) + len(l.Triggers) + len(l.Blocks) +
		len(l.MovingBlocks) + len(l.Mobs) + len(l.Doors) + len(l.Buttons) +
		len(l.Vaults) + len(l.Cutscenes) + len(l.ParallaxLayers) + len(l.LightSources)
}

// Validate checks structural invariants the game scene relies on. Loading
// never calls it; unknown or odd content is not a load failure.
//
// Postcondition: Returns nil if valid, or an error joining every violation.
func (l *LevelData) Validate() error {
	var errs []error
	if l.LevelWidth <= 0 || l.LevelHeight <= 0 {
		errs = append(errs, fmt.Errorf("level dimensions must be positive, got %dx%d", l.LevelWidth, l.LevelHeight))
	}
	if l.VerticalMargin < 0 {
		errs = append(errs, fmt.Errorf("verticalMargin must be >= 0, got %d", l.VerticalMargin))
	}

	errs = append(errs, duplicateIDs("door", l.Doors, func(d DoorData) string { return d.DoorID })...)
	errs = append(errs, duplicateIDs("button", l.Buttons, func(b ButtonData) string { return b.ButtonID })...)
	errs = append(errs, duplicateIDs("vault", l.Vaults, func(v VaultData) string { return v.VaultID })...)
	errs = append(errs, duplicateIDs("cutscene", l.Cutscenes, func(c CutsceneData) string { return c.CutsceneID })...)

	for i, c := range l.Cutscenes {
		if len(c.Frames) == 0 {
			errs = append(errs, fmt.Errorf("cutscene[%d] %q has no frames", i, c.CutsceneID))
		}
	}
	return errors.Join(errs...)
}

func duplicateIDs[T any](kind string, items []T, id func(T) string) []error {
	var errs []error
	seen := make(map[string]int, len(items))
	for i, it := range items {
		key := id(it)
		if key == "" {
			continue
		}
		if first, ok := seen[key]; ok {
			errs = append(errs, fmt.Errorf("%s[%d]: id %q already used by %s[%d]", kind, i, key, kind, first))
			continue
		}
		seen[key] = i
	}
	return errs
}

// DanglingReference is a string cross-reference with no matching target in
// the same level.
type DanglingReference struct {
	From string
	To   string
}

// DanglingReferences reports button links to unknown doors and door or vault
// keys naming no item in the level. Keys may legitimately come from other
// levels, so callers decide whether these are errors.
func (l *LevelData) DanglingReferences() []DanglingReference {
	doors := make(map[string]bool, len(l.Doors))
	for _, d := range l.Doors {
		if d.DoorID != "" {
			doors[d.DoorID] = true
		}
	}
	items := make(map[string]bool, len(l.Items))
	for _, it := range l.Items {
		if it.ItemID != "" {
			items[it.ItemID] = true
		}
	}

	var out []DanglingReference
	for _, b := range l.Buttons {
		for _, id := range b.LinkedDoors {
			if !doors[id] {
				out = append(out, DanglingReference{From: "button " + b.ButtonID, To: "door " + id})
			}
		}
	}
	for _, d := range l.Doors {
		if d.KeyItemID != "" && !items[d.KeyItemID] {
			out = append(out, DanglingReference{From: "door " + d.DoorID, To: "item " + d.KeyItemID})
		}
	}
	for _, v := range l.Vaults {
		if v.KeyItemID != "" && !items[v.KeyItemID] {
			out = append(out, DanglingReference{From: "vault " + v.VaultID, To: "item " + v.KeyItemID})
		}
	}
	return out
}
