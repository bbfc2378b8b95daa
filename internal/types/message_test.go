package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMentions(t *testing.T) {
	mentions := ExtractMentions("Hello @FORGE and @CLIO, please review @ATLAS work")
	assert.Equal(t, []string{"FORGE", "CLIO", "ATLAS"}, mentions)
}

func TestExtractMentionsDeduplicates(t *testing.T) {
	mentions := ExtractMentions("@BOLT ping, @BOLT again, then @LOGAN")
	assert.Equal(t, []string{"BOLT", "LOGAN"}, mentions)
}

func TestExtractMentionsNone(t *testing.T) {
	assert.Empty(t, ExtractMentions("No mentions here"))
	assert.Empty(t, ExtractMentions(""))
	// A bare @ followed by a digit is not a mention token.
	assert.Empty(t, ExtractMentions("meet @ 5pm, room @101"))
}

func TestMessageTime(t *testing.T) {
	cases := []struct {
		name      string
		createdAt string
		ok        bool
	}{
		{"iso with Z", "2026-01-29T12:00:00Z", true},
		{"iso with fraction", "2026-01-29T12:00:00.123456Z", true},
		{"space separated", "2026-01-29 12:00:00", true},
		{"space separated with fraction", "2026-01-29 12:00:00.5", true},
		{"empty", "", false},
		{"garbage", "invalid", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := &Message{ID: 1, CreatedAt: tc.createdAt}
			ts, ok := msg.Time()
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, 2026, ts.Year())
			}
		})
	}
}

func TestMessagePreview(t *testing.T) {
	short := &Message{Content: "Short"}
	assert.Equal(t, "Short", short.Preview())

	long := &Message{Content: strings.Repeat("A", 200)}
	preview := long.Preview()
	assert.True(t, strings.HasSuffix(preview, "..."))
	assert.LessOrEqual(t, len(preview), PreviewLength+3)

	multiline := &Message{Content: "Line 1\nLine 2\nLine 3"}
	assert.NotContains(t, multiline.Preview(), "\n")

	empty := &Message{Content: ""}
	assert.Equal(t, "(empty)", empty.Preview())
}

func TestMessageIsRoot(t *testing.T) {
	one := int64(1)
	two := int64(2)

	assert.True(t, (&Message{ID: 1}).IsRoot())
	assert.True(t, (&Message{ID: 1, ThreadID: &one}).IsRoot())
	assert.False(t, (&Message{ID: 2, ParentID: &one}).IsRoot())
	assert.False(t, (&Message{ID: 3, ThreadID: &two}).IsRoot())
}

func TestMessageChannelFallback(t *testing.T) {
	assert.Equal(t, "general", (&Message{ChannelID: "ch1", ChannelName: "general"}).Channel())
	assert.Equal(t, "ch1", (&Message{ChannelID: "ch1"}).Channel())
}
