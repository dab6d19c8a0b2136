package level

import (
	"fmt"

	"github.com/Larleeloo/DND-Pixel-Art-Game1-sub006/internal/document"
)

// Dropped is a piece of document content the binder does not carry into
// LevelData, and so a save will not write back.
type Dropped struct {
	// Path locates the content, e.g. "platforms[2].editorHint".
	Path   string
	Reason string
}

func (d Dropped) String() string { return d.Path + ": " + d.Reason }

func keySet(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

var scalarKeys = keySet(
	"name", "description", "backgroundPath", "musicPath", "tilesetPath", "nextLevel",
	"levelWidth", "levelHeight", "groundY", "playerSpawnX", "playerSpawnY",
	"scrollingEnabled", "verticalScrollEnabled", "verticalMargin", "gravity",
	"nightMode", "nightDarkness", "ambientLevel", "playerLightEnabled",
	"playerLightRadius", "playerLightFalloff",
)

var sectionKeys = map[string]map[string]bool{
	"platforms":      keySet("x", "y", "spritePath", "width", "height", "solid", "tintRed", "tintGreen", "tintBlue"),
	"items":          keySet("x", "y", "itemName", "itemId", "itemType", "spritePath", "value", "stackCount"),
	"triggers":       keySet("x", "y", "width", "height", "triggerType", "target", "oneShot"),
	"blocks":         keySet("x", "y", "blockType", "breakable", "hitPoints", "dropItemId", "maskRed", "maskGreen", "maskBlue"),
	"movingBlocks":   keySet("x", "y", "blockType", "endX", "endY", "speed", "pauseFrames", "pattern", "waypoints"),
	"mobs":           keySet("x", "y", "mobType", "behavior", "spritePath", "health", "damage", "patrolRange", "facingRight", "spawnId"),
	"doors":          keySet("x", "y", "doorId", "width", "height", "locked", "keyItemId", "targetLevel", "spritePath"),
	"buttons":        keySet("x", "y", "buttonId", "linkedDoors", "activation", "spritePath"),
	"vaults":         keySet("x", "y", "vaultId", "vaultType", "locked", "keyItemId", "lootTable", "capacity"),
	"cutscenes":      keySet("cutsceneId", "triggerX", "triggerY", "playOnce", "frames"),
	"parallaxLayers": keySet("depthLevel", "name", "imagePath", "scrollSpeedX", "scrollSpeedY", "zOrder", "scale", "opacity", "tileHorizontal", "tileVertical", "offsetX", "offsetY"),
	"lightSources":   keySet("lightType", "x", "y", "name", "radius", "falloffRadius", "colorRed", "colorGreen", "colorBlue", "intensity", "flicker", "flickerSpeed", "flickerAmount", "enabled"),
}

var frameKeys = keySet("imagePath", "text")

// Unbound lists the content of doc that Bind ignores: comment entries,
// unknown keys, non-object entries and sections that are not arrays. The
// result is in document order and empty when a bind and save would keep
// everything.
func Unbound(doc *document.Object) []Dropped {
	var out []Dropped
	for _, key := range doc.Keys() {
		v, _ := doc.Get(key)
		if scalarKeys[key] {
			continue
		}
		fieldKeys, ok := sectionKeys[key]
		if !ok {
			out = append(out, Dropped{Path: key, Reason: "unknown key"})
			continue
		}
		entries, ok := v.AsArray()
		if !ok {
			out = append(out, Dropped{Path: key, Reason: fmt.Sprintf("%s is not an array", v.Kind())})
			continue
		}
		for i, e := range entries {
			path := fmt.Sprintf("%s[%d]", key, i)
			obj, ok := e.AsObject()
			switch {
			case !ok:
				out = append(out, Dropped{Path: path, Reason: fmt.Sprintf("%s entry", e.Kind())})
			case obj.Has(CommentKey):
				out = append(out, Dropped{Path: path, Reason: "comment entry"})
			default:
				out = append(out, unknownKeys(path, obj, fieldKeys)...)
				if key == "cutscenes" {
					out = append(out, unboundFrames(path, obj)...)
				}
			}
		}
	}
	return out
}

func unknownKeys(path string, obj *document.Object, known map[string]bool) []Dropped {
	var out []Dropped
	for _, k := range obj.Keys() {
		if !known[k] {
			out = append(out, Dropped{Path: path + "." + k, Reason: "unknown key"})
		}
	}
	return out
}

func unboundFrames(path string, cutscene *document.Object) []Dropped {
	v, ok := cutscene.Get("frames")
	if !ok {
		return nil
	}
	frames, ok := v.AsArray()
	if !ok {
		return []Dropped{{Path: path + ".frames", Reason: fmt.Sprintf("%s is not an array", v.Kind())}}
	}
	var out []Dropped
	for i, fr := range frames {
		fpath := fmt.Sprintf("%s.frames[%d]", path, i)
		obj, ok := fr.AsObject()
		if !ok {
			out = append(out, Dropped{Path: fpath, Reason: fmt.Sprintf("%s entry", fr.Kind())})
			continue
		}
		out = append(out, unknownKeys(fpath, obj, frameKeys)...)
	}
	return out
}
