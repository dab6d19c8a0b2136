package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Larleeloo/DND-Pixel-Art-Game1-sub006/internal/document"
)

func bindText(t *testing.T, text string) *LevelData {
	t.Helper()
	doc, err := document.ParseObject(text)
	require.NoError(t, err)
	return NewBinder(DefaultPresets()).Bind(doc)
}

func TestBind_SinglePlatform(t *testing.T) {
	lvl := bindText(t, `{"name":"Test","groundY":720,"platforms":[{"x":10,"y":20,"spritePath":"p.png","solid":true}]}`)

	assert.Equal(t, "Test", lvl.Name)
	assert.Equal(t, 720, lvl.GroundY)
	require.Len(t, lvl.Platforms, 1)
	p := lvl.Platforms[0]
	assert.Equal(t, 10, p.X)
	assert.Equal(t, 20, p.Y)
	assert.Equal(t, "p.png", p.SpritePath)
	assert.True(t, p.Solid)

	assert.False(t, lvl.ScrollingEnabled)
	assert.False(t, lvl.VerticalScrollEnabled)
	assert.Equal(t, 1920, lvl.LevelWidth)
	assert.Equal(t, 0.8, lvl.NightDarkness)
	assert.Empty(t, lvl.Items)
	assert.NotNil(t, lvl.Items)
	assert.NotNil(t, lvl.LightSources)
}

func TestBind_EmptyDocumentIsAllDefaults(t *testing.T) {
	lvl := bindText(t, `{}`)
	assert.Equal(t, NewLevelData(), lvl)
}

func TestBind_UnknownKeysIgnored(t *testing.T) {
	lvl := bindText(t, `{"name": "X", "futureFeature": {"a": [1, 2]}, "platforms": [{"x": 1, "wobble": true}]}`)
	assert.Equal(t, "X", lvl.Name)
	require.Len(t, lvl.Platforms, 1)
	assert.Equal(t, 1, lvl.Platforms[0].X)
}

func TestBind_CommentEntriesSkipped(t *testing.T) {
	lvl := bindText(t, `{
		"mobs": [
			{"_comment": "goblins guard the bridge", "x": 99, "mobType": "goblin"},
			{"x": 5, "y": 6, "mobType": "goblin"},
			{"_comment": ""}
		],
		"doors": [{"_comment": "none yet"}]
	}`)
	require.Len(t, lvl.Mobs, 1)
	assert.Equal(t, 5, lvl.Mobs[0].X)
	assert.Equal(t, "goblin", lvl.Mobs[0].MobType)
	assert.Empty(t, lvl.Doors)
}

func TestBind_NonObjectEntriesSkipped(t *testing.T) {
	lvl := bindText(t, `{"items": [1, "two", null, {"itemName": "gem"}, []], "blocks": "not an array"}`)
	require.Len(t, lvl.Items, 1)
	assert.Equal(t, "gem", lvl.Items[0].ItemName)
	assert.Empty(t, lvl.Blocks)
}

func TestBind_OrderPreserved(t *testing.T) {
	lvl := bindText(t, `{"triggers": [{"target": "a"}, {"target": "b"}, {"target": "c"}]}`)
	require.Len(t, lvl.Triggers, 3)
	assert.Equal(t, "a", lvl.Triggers[0].Target)
	assert.Equal(t, "b", lvl.Triggers[1].Target)
	assert.Equal(t, "c", lvl.Triggers[2].Target)
}

func TestBind_StringShapedScalarsCoerce(t *testing.T) {
	native := bindText(t, `{"levelWidth": 3000, "gravity": 0.75, "nightMode": true, "platforms": [{"x": 12, "solid": false}]}`)
	quoted := bindText(t, `{"levelWidth": "3000", "gravity": "0.75", "nightMode": "true", "platforms": [{"x": "12", "solid": "false"}]}`)
	assert.Equal(t, native, quoted)
	assert.Equal(t, 3000, quoted.LevelWidth)
	assert.Equal(t, 0.75, quoted.Gravity)
	assert.True(t, quoted.NightMode)
	assert.False(t, quoted.Platforms[0].Solid)
}

func TestBind_UncoercibleValuesFallToZero(t *testing.T) {
	lvl := bindText(t, `{"levelWidth": "wide", "gravity": [1], "scrollingEnabled": "TRUE", "platforms": [{"solid": 1}]}`)
	assert.Equal(t, 0, lvl.LevelWidth)
	assert.Equal(t, 0.0, lvl.Gravity)
	assert.False(t, lvl.ScrollingEnabled)
	assert.False(t, lvl.Platforms[0].Solid)
}

func TestBind_StringNumbersFollowDocumentGrammar(t *testing.T) {
	lvl := bindText(t, `{"levelWidth": "1e3", "levelHeight": "+5", "groundY": "0x10", "gravity": "1e-1", "nightDarkness": "Inf", "ambientLevel": " -.5 "}`)
	assert.Equal(t, 0, lvl.LevelWidth)
	assert.Equal(t, 0, lvl.LevelHeight)
	assert.Equal(t, 0, lvl.GroundY)
	assert.Equal(t, 0.0, lvl.Gravity)
	assert.Equal(t, 0.0, lvl.NightDarkness)
	assert.Equal(t, -0.5, lvl.AmbientLevel)

	_, err := document.ParseObject(`{"levelWidth": 1e3}`)
	assert.ErrorIs(t, err, document.ErrSyntax, "the native spelling is not a number either")
}

func TestBind_FloatIntoIntTruncates(t *testing.T) {
	lvl := bindText(t, `{"groundY": 720.9, "playerSpawnX": "-15.5"}`)
	assert.Equal(t, 720, lvl.GroundY)
	assert.Equal(t, -15, lvl.PlayerSpawnX)
}

func TestBind_ButtonLinkedDoors(t *testing.T) {
	lvl := bindText(t, `{"buttons": [
		{"buttonId": "b1", "linkedDoors": ["d1", "d2"]},
		{"buttonId": "b2", "linkedDoors": "d3, d4"},
		{"buttonId": "b3"}
	]}`)
	require.Len(t, lvl.Buttons, 3)
	assert.Equal(t, []string{"d1", "d2"}, lvl.Buttons[0].LinkedDoors)
	assert.Equal(t, []string{"d3", "d4"}, lvl.Buttons[1].LinkedDoors)
	assert.Equal(t, []string{}, lvl.Buttons[2].LinkedDoors)
	assert.Equal(t, "toggle", lvl.Buttons[2].Activation)
}

func TestBind_CutsceneFrames(t *testing.T) {
	lvl := bindText(t, `{"cutscenes": [{"cutsceneId": "intro", "frames": [
		{"imagePath": "f1.png", "text": "Long ago..."},
		{"imagePath": "f2.png"}
	]}]}`)
	require.Len(t, lvl.Cutscenes, 1)
	c := lvl.Cutscenes[0]
	assert.Equal(t, "intro", c.CutsceneID)
	assert.True(t, c.PlayOnce)
	assert.Equal(t, []FrameData{
		{ImagePath: "f1.png", Text: "Long ago..."},
		{ImagePath: "f2.png"},
	}, c.Frames)
}

func TestBind_LightPresetThenOverride(t *testing.T) {
	lvl := bindText(t, `{"lightSources": [{ "lightType": "torch", "radius": 50 }]}`)
	require.Len(t, lvl.LightSources, 1)
	l := lvl.LightSources[0]
	torch, ok := DefaultPresets().Light("torch")
	require.True(t, ok)

	assert.Equal(t, "torch", l.LightType)
	assert.Equal(t, 50.0, l.Radius)
	assert.Equal(t, 50*FalloffMultiplier, l.FalloffRadius)
	assert.NotEqual(t, torch.FalloffRadius, l.FalloffRadius)
	assert.Equal(t, torch.ColorRed, l.ColorRed)
	assert.Equal(t, torch.ColorGreen, l.ColorGreen)
	assert.Equal(t, torch.ColorBlue, l.ColorBlue)
	assert.Equal(t, torch.Flicker, l.Flicker)
	assert.Equal(t, torch.FlickerSpeed, l.FlickerSpeed)
	assert.Equal(t, torch.FlickerAmount, l.FlickerAmount)
	assert.True(t, l.Enabled)
}

func TestBind_LightExplicitFieldsWinRegardlessOfKeyOrder(t *testing.T) {
	lvl := bindText(t, `{"lightSources": [
		{"colorRed": 10, "falloffRadius": 77, "radius": 40, "lightType": "campfire"},
		{"lightType": "campfire"}
	]}`)
	require.Len(t, lvl.LightSources, 2)
	campfire, _ := DefaultPresets().Light("campfire")

	l := lvl.LightSources[0]
	assert.Equal(t, 10, l.ColorRed)
	assert.Equal(t, 40.0, l.Radius)
	assert.Equal(t, 77.0, l.FalloffRadius)
	assert.Equal(t, campfire.ColorGreen, l.ColorGreen)

	plain := lvl.LightSources[1]
	assert.Equal(t, campfire.Radius, plain.Radius)
	assert.Equal(t, campfire.FalloffRadius, plain.FalloffRadius)
}

func TestBind_LightUnknownTypeUsesDefaults(t *testing.T) {
	lvl := bindText(t, `{"lightSources": [{"lightType": "lava", "x": 3}]}`)
	want := NewLightSourceData()
	want.LightType = "lava"
	want.X = 3
	assert.Equal(t, want, lvl.LightSources[0])
}

func TestBind_ParallaxPresetThenOverride(t *testing.T) {
	lvl := bindText(t, `{"parallaxLayers": [
		{"opacity": 0.5, "depthLevel": "sky", "imagePath": "sky.png"},
		{"imagePath": "hills.png"}
	]}`)
	require.Len(t, lvl.ParallaxLayers, 2)
	sky, _ := DefaultPresets().Parallax("sky")

	l := lvl.ParallaxLayers[0]
	assert.Equal(t, "sky", l.DepthLevel)
	assert.Equal(t, 0.5, l.Opacity)
	assert.Equal(t, sky.ScrollSpeedX, l.ScrollSpeedX)
	assert.Equal(t, sky.ZOrder, l.ZOrder)
	assert.Equal(t, "sky.png", l.ImagePath)

	def := lvl.ParallaxLayers[1]
	assert.Equal(t, DefaultDepthLevel, def.DepthLevel)
	mid, _ := DefaultPresets().Parallax(DefaultDepthLevel)
	assert.Equal(t, mid.ScrollSpeedX, def.ScrollSpeedX)
	assert.Equal(t, mid.ZOrder, def.ZOrder)
}

func TestBind_CustomPresetTable(t *testing.T) {
	presets, err := LoadPresetsFromBytes([]byte(`
lights:
  torch:
    color_red: 1
`), DefaultPresets())
	require.NoError(t, err)

	doc, err := document.ParseObject(`{"lightSources": [{"lightType": "torch"}]}`)
	require.NoError(t, err)
	lvl := NewBinder(presets).Bind(doc)
	assert.Equal(t, 1, lvl.LightSources[0].ColorRed)

	builtin := NewBinder(DefaultPresets()).Bind(doc)
	assert.Equal(t, 255, builtin.LightSources[0].ColorRed)
}

func TestBind_OverlaidDefaultSelectorsApplyWhetherWrittenOrNot(t *testing.T) {
	presets, err := LoadPresetsFromBytes([]byte(`
parallax:
  middleground_1:
    scroll_speed_x: 0.9
lights:
  custom:
    radius: 40
    falloff_radius: 60
    color_red: 10
    color_green: 20
    color_blue: 30
    intensity: 0.5
`), DefaultPresets())
	require.NoError(t, err)
	binder := NewBinder(presets)

	doc, err := document.ParseObject(`{
		"parallaxLayers": [{"name": "a"}, {"name": "a", "depthLevel": "middleground_1"}],
		"lightSources": [{"name": "l"}, {"name": "l", "lightType": "custom"}]
	}`)
	require.NoError(t, err)
	lvl := binder.Bind(doc)

	require.Len(t, lvl.ParallaxLayers, 2)
	assert.Equal(t, 0.9, lvl.ParallaxLayers[0].ScrollSpeedX)
	assert.Equal(t, lvl.ParallaxLayers[1], lvl.ParallaxLayers[0])

	require.Len(t, lvl.LightSources, 2)
	assert.Equal(t, 40.0, lvl.LightSources[0].Radius)
	assert.Equal(t, 60.0, lvl.LightSources[0].FalloffRadius)
	assert.Equal(t, 10, lvl.LightSources[0].ColorRed)
	assert.Equal(t, lvl.LightSources[1], lvl.LightSources[0])
}
