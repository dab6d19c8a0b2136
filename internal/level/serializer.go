package level

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// escaper rewrites the characters the parser treats specially. Backslash is
// listed first so escapes it produces are never re-escaped.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Escape returns s with backslash, quote, newline, carriage return and tab
// replaced by their two-character escapes.
func Escape(s string) string { return escaper.Replace(s) }

func quote(s string) string { return `"` + Escape(s) + `"` }

// formatFloat writes the shortest decimal that parses back to f, always with
// a '.'. The grammar has no NaN or infinity, so those are written as 0.0.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0.0"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// objectWriter emits one object's members, either inline or one member per
// line depending on sep.
type objectWriter struct {
	b     strings.Builder
	sep   string
	close string
	n     int
}

func inlineObject() *objectWriter {
	w := &objectWriter{sep: ", ", close: "}"}
	w.b.WriteString("{")
	return w
}

func blockObject() *objectWriter {
	w := &objectWriter{sep: ",\n  ", close: "\n}\n"}
	w.b.WriteString("{\n  ")
	return w
}

func (w *objectWriter) raw(key, text string) {
	if w.n > 0 {
		w.b.WriteString(w.sep)
	}
	w.n++
	w.b.WriteString(quote(key))
	w.b.WriteString(": ")
	w.b.WriteString(text)
}

func (w *objectWriter) str(key, v string) { w.raw(key, quote(v)) }
func (w *objectWriter) num(key string, v int) { w.raw(key, strconv.Itoa(v)) }
func (w *objectWriter) flt(key string, v float64) { w.raw(key, formatFloat(v)) }
func (w *objectWriter) flag(key string, v bool) { w.raw(key, strconv.FormatBool(v)) }

func (w *objectWriter) strs(key string, v []string) {
	parts := make([]string, len(v))
	for i, s := range v {
		parts[i] = quote(s)
	}
	w.raw(key, "["+strings.Join(parts, ", ")+"]")
}

func (w *objectWriter) String() string {
	return w.b.String() + w.close
}

// section writes a top-level array with one inline entity per line.
func section[T any](w *objectWriter, key string, items []T, write func(*objectWriter, T)) {
	if len(items) == 0 {
		w.raw(key, "[]")
		return
	}
	lines := make([]string, len(items))
	for i, it := range items {
		ow := inlineObject()
		write(ow, it)
		lines[i] = "    " + ow.String()
	}
	w.raw(key, "[\n"+strings.Join(lines, ",\n")+"\n  ]")
}

// Serialize renders lvl as level file text. Keys are written in a fixed
// order, so equal models always produce identical text.
//
// Precondition: lvl must not be nil.
func Serialize(lvl *LevelData) string {
	w := blockObject()

	w.str("name", lvl.Name)
	w.str("description", lvl.Description)
	w.str("backgroundPath", lvl.BackgroundPath)
	w.str("musicPath", lvl.MusicPath)
	w.str("tilesetPath", lvl.TilesetPath)
	w.str("nextLevel", lvl.NextLevel)

	w.num("levelWidth", lvl.LevelWidth)
	w.num("levelHeight", lvl.LevelHeight)
	w.num("groundY", lvl.GroundY)
	w.num("playerSpawnX", lvl.PlayerSpawnX)
	w.num("playerSpawnY", lvl.PlayerSpawnY)
	w.flag("scrollingEnabled", lvl.ScrollingEnabled)
	w.flag("verticalScrollEnabled", lvl.VerticalScrollEnabled)
	w.num("verticalMargin", lvl.VerticalMargin)
	w.flt("gravity", lvl.Gravity)

	w.flag("nightMode", lvl.NightMode)
	w.flt("nightDarkness", lvl.NightDarkness)
	w.flt("ambientLevel", lvl.AmbientLevel)
	w.flag("playerLightEnabled", lvl.PlayerLightEnabled)
	w.flt("playerLightRadius", lvl.PlayerLightRadius)
	w.flt("playerLightFalloff", lvl.PlayerLightFalloff)

	section(w, "platforms", lvl.Platforms, writePlatform)
	section(w, "items", lvl.Items, writeItem)
	section(w, "triggers", lvl.Triggers, writeTrigger)
	section(w, "blocks", lvl.Blocks, writeBlock)
	section(w, "movingBlocks", lvl.MovingBlocks, writeMovingBlock)
	section(w, "mobs", lvl.Mobs, writeMob)
	section(w, "doors", lvl.Doors, writeDoor)
	section(w, "buttons", lvl.Buttons, writeButton)
	section(w, "vaults", lvl.Vaults, writeVault)
	section(w, "cutscenes", lvl.Cutscenes, writeCutscene)
	section(w, "parallaxLayers", lvl.ParallaxLayers, writeParallaxLayer)
	section(w, "lightSources", lvl.LightSources, writeLightSource)

	return w.String()
}

// Encode writes Serialize(lvl) to out.
func Encode(out io.Writer, lvl *LevelData) error {
	_, err := io.WriteString(out, Serialize(lvl))
	return err
}

func writePlatform(w *objectWriter, p PlatformData) {
	w.num("x", p.X)
	w.num("y", p.Y)
	w.str("spritePath", p.SpritePath)
	w.num("width", p.Width)
	w.num("height", p.Height)
	w.flag("solid", p.Solid)
	if p.HasTint() {
		w.num("tintRed", p.TintRed)
		w.num("tintGreen", p.TintGreen)
		w.num("tintBlue", p.TintBlue)
	}
}

func writeItem(w *objectWriter, it ItemData) {
	w.num("x", it.X)
	w.num("y", it.Y)
	w.str("itemName", it.ItemName)
	w.str("itemId", it.ItemID)
	w.str("itemType", it.ItemType)
	w.str("spritePath", it.SpritePath)
	w.num("value", it.Value)
	w.num("stackCount", it.StackCount)
}

func writeTrigger(w *objectWriter, t TriggerData) {
	w.num("x", t.X)
	w.num("y", t.Y)
	w.num("width", t.Width)
	w.num("height", t.Height)
	w.str("triggerType", t.TriggerType)
	w.str("target", t.Target)
	w.flag("oneShot", t.OneShot)
}

func writeBlock(w *objectWriter, b BlockData) {
	w.num("x", b.X)
	w.num("y", b.Y)
	w.str("blockType", b.BlockType)
	w.flag("breakable", b.Breakable)
	w.num("hitPoints", b.HitPoints)
	w.str("dropItemId", b.DropItemID)
	if b.HasMask() {
		w.num("maskRed", b.MaskRed)
		w.num("maskGreen", b.MaskGreen)
		w.num("maskBlue", b.MaskBlue)
	}
}

func writeMovingBlock(w *objectWriter, m MovingBlockData) {
	w.num("x", m.X)
	w.num("y", m.Y)
	w.str("blockType", m.BlockType)
	w.num("endX", m.EndX)
	w.num("endY", m.EndY)
	w.flt("speed", m.Speed)
	w.num("pauseFrames", m.PauseFrames)
	w.str("pattern", m.Pattern)
	if m.Waypoints != "" {
		w.str("waypoints", m.Waypoints)
	}
}

func writeMob(w *objectWriter, m MobData) {
	w.num("x", m.X)
	w.num("y", m.Y)
	w.str("mobType", m.MobType)
	w.str("behavior", m.Behavior)
	w.str("spritePath", m.SpritePath)
	w.num("health", m.Health)
	w.num("damage", m.Damage)
	w.num("patrolRange", m.PatrolRange)
	w.flag("facingRight", m.FacingRight)
	w.str("spawnId", m.SpawnID)
}

func writeDoor(w *objectWriter, d DoorData) {
	w.num("x", d.X)
	w.num("y", d.Y)
	w.str("doorId", d.DoorID)
	w.num("width", d.Width)
	w.num("height", d.Height)
	w.flag("locked", d.Locked)
	w.str("keyItemId", d.KeyItemID)
	w.str("targetLevel", d.TargetLevel)
	w.str("spritePath", d.SpritePath)
}

func writeButton(w *objectWriter, b ButtonData) {
	w.num("x", b.X)
	w.num("y", b.Y)
	w.str("buttonId", b.ButtonID)
	w.strs("linkedDoors", b.LinkedDoors)
	w.str("activation", b.Activation)
	w.str("spritePath", b.SpritePath)
}

func writeVault(w *objectWriter, v VaultData) {
	w.num("x", v.X)
	w.num("y", v.Y)
	w.str("vaultId", v.VaultID)
	w.str("vaultType", v.VaultType)
	w.flag("locked", v.Locked)
	w.str("keyItemId", v.KeyItemID)
	w.str("lootTable", v.LootTable)
	w.num("capacity", v.Capacity)
}

func writeCutscene(w *objectWriter, c CutsceneData) {
	w.str("cutsceneId", c.CutsceneID)
	w.num("triggerX", c.TriggerX)
	w.num("triggerY", c.TriggerY)
	w.flag("playOnce", c.PlayOnce)

	frames := make([]string, len(c.Frames))
	for i, fr := range c.Frames {
		fw := inlineObject()
		fw.str("imagePath", fr.ImagePath)
		if fr.Text != "" {
			fw.str("text", fr.Text)
		}
		frames[i] = fw.String()
	}
	w.raw("frames", "["+strings.Join(frames, ", ")+"]")
}

func writeParallaxLayer(w *objectWriter, l ParallaxLayerData) {
	w.str("name", l.Name)
	w.str("imagePath", l.ImagePath)
	w.str("depthLevel", l.DepthLevel)
	w.flt("scrollSpeedX", l.ScrollSpeedX)
	w.flt("scrollSpeedY", l.ScrollSpeedY)
	w.num("zOrder", l.ZOrder)
	w.flt("scale", l.Scale)
	w.flt("opacity", l.Opacity)
	w.flag("tileHorizontal", l.TileHorizontal)
	w.flag("tileVertical", l.TileVertical)
	w.num("offsetX", l.OffsetX)
	w.num("offsetY", l.OffsetY)
}

func writeLightSource(w *objectWriter, l LightSourceData) {
	w.num("x", l.X)
	w.num("y", l.Y)
	w.str("name", l.Name)
	w.str("lightType", l.LightType)
	w.flt("radius", l.Radius)
	w.flt("falloffRadius", l.FalloffRadius)
	w.num("colorRed", l.ColorRed)
	w.num("colorGreen", l.ColorGreen)
	w.num("colorBlue", l.ColorBlue)
	w.flt("intensity", l.Intensity)
	w.flag("flicker", l.Flicker)
	w.flt("flickerSpeed", l.FlickerSpeed)
	w.flt("flickerAmount", l.FlickerAmount)
	w.flag("enabled", l.Enabled)
}
