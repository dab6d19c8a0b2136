package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const singlePlatform = `{"name":"Test","groundY":720,"platforms":[{"x":10,"y":20,"spritePath":"p.png","solid":true}]}`

func TestExtractString(t *testing.T) {
	name, ok := ExtractString(singlePlatform, "name")
	assert.True(t, ok)
	assert.Equal(t, "Test", name)

	sprite, ok := ExtractString(singlePlatform, "spritePath")
	assert.True(t, ok)
	assert.Equal(t, "p.png", sprite)
}

func TestExtractString_Escapes(t *testing.T) {
	text := `{"description": "say \"hi\"\nbye"}`
	got, ok := ExtractString(text, "description")
	assert.True(t, ok)
	assert.Equal(t, "say \"hi\"\nbye", got)
}

func TestExtractString_Absent(t *testing.T) {
	cases := map[string]string{
		"missing key":          `{"title": "x"}`,
		"no colon":             `{"name"}`,
		"no opening quote":     `{"name": 12}`,
		"unterminated value":   `{"name": "abc`,
		"key is a prefix only": `{"names": "x"}`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := ExtractString(text, "name")
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

func TestExtractString_FirstOccurrenceWins(t *testing.T) {
	text := `{"lightSources": [{"name": "inner"}], "name": "outer"}`
	got, ok := ExtractString(text, "name")
	assert.True(t, ok)
	assert.Equal(t, "inner", got)
}
