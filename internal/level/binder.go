package level

import (
	"github.com/Larleeloo/DND-Pixel-Art-Game1-sub006/internal/document"
)

// Binder projects a parsed document onto LevelData. It holds no per-document
// state and is safe for concurrent use.
type Binder struct {
	presets *PresetTables
}

// NewBinder returns a Binder that expands presets from presets.
//
// Precondition: presets must not be nil.
// Postcondition: Returns a non-nil Binder.
func NewBinder(presets *PresetTables) *Binder {
	return &Binder{presets: presets}
}

// Bind builds a fresh LevelData from doc. Unknown keys are ignored and absent
// keys keep their defaults; binding cannot fail.
//
// Postcondition: Returns a non-nil LevelData with no nil collections.
func (b *Binder) Bind(doc *document.Object) *LevelData {
	lvl := NewLevelData()
	f := fields{obj: doc}

	lvl.Name = f.getString("name", lvl.Name)
	lvl.Description = f.getString("description", lvl.Description)
	lvl.BackgroundPath = f.getString("backgroundPath", lvl.BackgroundPath)
	lvl.MusicPath = f.getString("musicPath", lvl.MusicPath)
	lvl.TilesetPath = f.getString("tilesetPath", lvl.TilesetPath)
	lvl.NextLevel = f.getString("nextLevel", lvl.NextLevel)

	lvl.LevelWidth = f.getInt("levelWidth", lvl.LevelWidth)
	lvl.LevelHeight = f.getInt("levelHeight", lvl.LevelHeight)
	lvl.GroundY = f.getInt("groundY", lvl.GroundY)
	lvl.PlayerSpawnX = f.getInt("playerSpawnX", lvl.PlayerSpawnX)
	lvl.PlayerSpawnY = f.getInt("playerSpawnY", lvl.PlayerSpawnY)
	lvl.ScrollingEnabled = f.getBool("scrollingEnabled", lvl.ScrollingEnabled)
	lvl.VerticalScrollEnabled = f.getBool("verticalScrollEnabled", lvl.VerticalScrollEnabled)
	lvl.VerticalMargin = f.getInt("verticalMargin", lvl.VerticalMargin)
	lvl.Gravity = f.getFloat("gravity", lvl.Gravity)

	lvl.NightMode = f.getBool("nightMode", lvl.NightMode)
	lvl.NightDarkness = f.getFloat("nightDarkness", lvl.NightDarkness)
	lvl.AmbientLevel = f.getFloat("ambientLevel", lvl.AmbientLevel)
	lvl.PlayerLightEnabled = f.getBool("playerLightEnabled", lvl.PlayerLightEnabled)
	lvl.PlayerLightRadius = f.getFloat("playerLightRadius", lvl.PlayerLightRadius)
	lvl.PlayerLightFalloff = f.getFloat("playerLightFalloff", lvl.PlayerLightFalloff)

	lvl.Platforms = bindSection(doc, "platforms", bindPlatform)
	lvl.Items = bindSection(doc, "items", bindItem)
	lvl.Triggers = bindSection(doc, "triggers", bindTrigger)
	lvl.Blocks = bindSection(doc, "blocks", bindBlock)
	lvl.MovingBlocks = bindSection(doc, "movingBlocks", bindMovingBlock)
	lvl.Mobs = bindSection(doc, "mobs", bindMob)
	lvl.Doors = bindSection(doc, "doors", bindDoor)
	lvl.Buttons = bindSection(doc, "buttons", bindButton)
	lvl.Vaults = bindSection(doc, "vaults", bindVault)
	lvl.Cutscenes = bindSection(doc, "cutscenes", bindCutscene)
	lvl.ParallaxLayers = bindSection(doc, "parallaxLayers", b.bindParallaxLayer)
	lvl.LightSources = bindSection(doc, "lightSources", b.bindLightSource)

	return lvl
}

// bindSection binds every object entry of the array under key, in order.
// Comment entries and non-object entries contribute nothing.
func bindSection[T any](doc *document.Object, key string, bind func(fields) T) []T {
	out := []T{}
	v, ok := doc.Get(key)
	if !ok {
		return out
	}
	entries, ok := v.AsArray()
	if !ok {
		return out
	}
	for _, e := range entries {
		obj, ok := e.AsObject()
		if !ok || obj.Has(CommentKey) {
			continue
		}
		out = append(out, bind(fields{obj: obj}))
	}
	return out
}

func bindPlatform(f fields) PlatformData {
	p := NewPlatformData()
	p.X = f.getInt("x", p.X)
	p.Y = f.getInt("y", p.Y)
	p.SpritePath = f.getString("spritePath", p.SpritePath)
	p.Width = f.getInt("width", p.Width)
	p.Height = f.getInt("height", p.Height)
	p.Solid = f.getBool("solid", p.Solid)
	p.TintRed = f.getInt("tintRed", p.TintRed)
	p.TintGreen = f.getInt("tintGreen", p.TintGreen)
	p.TintBlue = f.getInt("tintBlue", p.TintBlue)
	return p
}

func bindItem(f fields) ItemData {
	it := NewItemData()
	it.X = f.getInt("x", it.X)
	it.Y = f.getInt("y", it.Y)
	it.ItemName = f.getString("itemName", it.ItemName)
	it.ItemID = f.getString("itemId", it.ItemID)
	it.ItemType = f.getString("itemType", it.ItemType)
	it.SpritePath = f.getString("spritePath", it.SpritePath)
	it.Value = f.getInt("value", it.Value)
	it.StackCount = f.getInt("stackCount", it.StackCount)
	return it
}

func bindTrigger(f fields) TriggerData {
	t := NewTriggerData()
	t.X = f.getInt("x", t.X)
	t.Y = f.getInt("y", t.Y)
	t.Width = f.getInt("width", t.Width)
	t.Height = f.getInt("height", t.Height)
	t.TriggerType = f.getString("triggerType", t.TriggerType)
	t.Target = f.getString("target", t.Target)
	t.OneShot = f.getBool("oneShot", t.OneShot)
	return t
}

func bindBlock(f fields) BlockData {
	b := NewBlockData()
	b.X = f.getInt("x", b.X)
	b.Y = f.getInt("y", b.Y)
	b.BlockType = f.getString("blockType", b.BlockType)
	b.Breakable = f.getBool("breakable", b.Breakable)
	b.HitPoints = f.getInt("hitPoints", b.HitPoints)
	b.DropItemID = f.getString("dropItemId", b.DropItemID)
	b.MaskRed = f.getInt("maskRed", b.MaskRed)
	b.MaskGreen = f.getInt("maskGreen", b.MaskGreen)
	b.MaskBlue = f.getInt("maskBlue", b.MaskBlue)
	return b
}

func bindMovingBlock(f fields) MovingBlockData {
	m := NewMovingBlockData()
	m.X = f.getInt("x", m.X)
	m.Y = f.getInt("y", m.Y)
	m.BlockType = f.getString("blockType", m.BlockType)
	m.EndX = f.getInt("endX", m.EndX)
	m.EndY = f.getInt("endY", m.EndY)
	m.Speed = f.getFloat("speed", m.Speed)
	m.PauseFrames = f.getInt("pauseFrames", m.PauseFrames)
	m.Pattern = f.getString("pattern", m.Pattern)
	m.Waypoints = f.getString("waypoints", m.Waypoints)
	return m
}

func bindMob(f fields) MobData {
	m := NewMobData()
	m.X = f.getInt("x", m.X)
	m.Y = f.getInt("y", m.Y)
	m.MobType = f.getString("mobType", m.MobType)
	m.Behavior = f.getString("behavior", m.Behavior)
	m.SpritePath = f.getString("spritePath", m.SpritePath)
	m.Health = f.getInt("health", m.Health)
	m.Damage = f.getInt("damage", m.Damage)
	m.PatrolRange = f.getInt("patrolRange", m.PatrolRange)
	m.FacingRight = f.getBool("facingRight", m.FacingRight)
	m.SpawnID = f.getString("spawnId", m.SpawnID)
	return m
}

func bindDoor(f fields) DoorData {
	d := NewDoorData()
	d.X = f.getInt("x", d.X)
	d.Y = f.getInt("y", d.Y)
	d.DoorID = f.getString("doorId", d.DoorID)
	d.Width = f.getInt("width", d.Width)
	d.Height = f.getInt("height", d.Height)
	d.Locked = f.getBool("locked", d.Locked)
	d.KeyItemID = f.getString("keyItemId", d.KeyItemID)
	d.TargetLevel = f.getString("targetLevel", d.TargetLevel)
	d.SpritePath = f.getString("spritePath", d.SpritePath)
	return d
}

func bindButton(f fields) ButtonData {
	b := NewButtonData()
	b.X = f.getInt("x", b.X)
	b.Y = f.getInt("y", b.Y)
	b.ButtonID = f.getString("buttonId", b.ButtonID)
	b.LinkedDoors = f.getStrings("linkedDoors", b.LinkedDoors)
	b.Activation = f.getString("activation", b.Activation)
	b.SpritePath = f.getString("spritePath", b.SpritePath)
	return b
}

func bindVault(f fields) VaultData {
	v := NewVaultData()
	v.X = f.getInt("x", v.X)
	v.Y = f.getInt("y", v.Y)
	v.VaultID = f.getString("vaultId", v.VaultID)
	v.VaultType = f.getString("vaultType", v.VaultType)
	v.Locked = f.getBool("locked", v.Locked)
	v.KeyItemID = f.getString("keyItemId", v.KeyItemID)
	v.LootTable = f.getString("lootTable", v.LootTable)
	v.Capacity = f.getInt("capacity", v.Capacity)
	return v
}

// bindCutscene reads the frames array without comment-entry filtering;
// only top-level sections honor CommentKey.
func bindCutscene(f fields) CutsceneData {
	c := NewCutsceneData()
	c.CutsceneID = f.getString("cutsceneId", c.CutsceneID)
	c.TriggerX = f.getInt("triggerX", c.TriggerX)
	c.TriggerY = f.getInt("triggerY", c.TriggerY)
	c.PlayOnce = f.getBool("playOnce", c.PlayOnce)

	if v, ok := f.obj.Get("frames"); ok {
		if entries, ok := v.AsArray(); ok {
			for _, e := range entries {
				obj, ok := e.AsObject()
				if !ok {
					continue
				}
				ff := fields{obj: obj}
				c.Frames = append(c.Frames, FrameData{
					ImagePath: ff.getString("imagePath", ""),
					Text:      ff.getString("text", ""),
				})
			}
		}
	}
	return c
}

// bindParallaxLayer applies the preset for the resolved depth level, written
// or defaulted, then explicit fields.
func (b *Binder) bindParallaxLayer(f fields) ParallaxLayerData {
	l := NewParallaxLayerData()
	l.DepthLevel = f.getString("depthLevel", l.DepthLevel)
	if p, ok := b.presets.Parallax(l.DepthLevel); ok {
		p.applyTo(&l)
	}

	l.Name = f.getString("name", l.Name)
	l.ImagePath = f.getString("imagePath", l.ImagePath)
	l.ScrollSpeedX = f.getFloat("scrollSpeedX", l.ScrollSpeedX)
	l.ScrollSpeedY = f.getFloat("scrollSpeedY", l.ScrollSpeedY)
	l.ZOrder = f.getInt("zOrder", l.ZOrder)
	l.Scale = f.getFloat("scale", l.Scale)
	l.Opacity = f.getFloat("opacity", l.Opacity)
	l.TileHorizontal = f.getBool("tileHorizontal", l.TileHorizontal)
	l.TileVertical = f.getBool("tileVertical", l.TileVertical)
	l.OffsetX = f.getInt("offsetX", l.OffsetX)
	l.OffsetY = f.getInt("offsetY", l.OffsetY)
	return l
}

// bindLightSource applies the preset for the resolved light type, written or
// defaulted, then explicit fields. An explicit radius without an explicit
// falloff rescales the falloff from the new radius.
func (b *Binder) bindLightSource(f fields) LightSourceData {
	l := NewLightSourceData()
	l.LightType = f.getString("lightType", l.LightType)
	if p, ok := b.presets.Light(l.LightType); ok {
		p.applyTo(&l)
	}

	l.X = f.getInt("x", l.X)
	l.Y = f.getInt("y", l.Y)
	l.Name = f.getString("name", l.Name)
	l.Radius = f.getFloat("radius", l.Radius)
	l.FalloffRadius = f.getFloat("falloffRadius", l.FalloffRadius)
	if f.has("radius") && !f.has("falloffRadius") {
		l.FalloffRadius = l.Radius * FalloffMultiplier
	}
	l.ColorRed = f.getInt("colorRed", l.ColorRed)
	l.ColorGreen = f.getInt("colorGreen", l.ColorGreen)
	l.ColorBlue = f.getInt("colorBlue", l.ColorBlue)
	l.Intensity = f.getFloat("intensity", l.Intensity)
	l.Flicker = f.getBool("flicker", l.Flicker)
	l.FlickerSpeed = f.getFloat("flickerSpeed", l.FlickerSpeed)
	l.FlickerAmount = f.getFloat("flickerAmount", l.FlickerAmount)
	l.Enabled = f.getBool("enabled", l.Enabled)
	return l
}
