package main

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/metaphy/threadctl/internal/types"
)

func displayThread(rootID int64, sender, content string, replies int) *types.Thread {
	root := &types.Message{
		ID: rootID, Sender: sender, Content: content,
		ChannelName: "general",
		CreatedAt:   "2026-01-29T10:00:00Z",
	}
	t := types.NewThread(root)
	for i := 0; i < replies; i++ {
		id := rootID + int64(i) + 1
		t.Add(&types.Message{
			ID: id, Sender: "replier", Content: "reply",
			ParentID:  &rootID,
			CreatedAt: "2026-01-29T10:05:00Z",
			Depth:     1,
		})
	}
	return t
}

func TestFormatThreadListEmpty(t *testing.T) {
	assert.Equal(t, "No threads found.", formatThreadList(nil, false))
}

func TestFormatThreadList(t *testing.T) {
	color.NoColor = true

	threads := []*types.Thread{
		displayThread(1, "forge", "What is consciousness?", 2),
		displayThread(10, "clio", "Standup notes", 0),
	}
	out := formatThreadList(threads, false)

	assert.Contains(t, out, "Found 2 thread(s):")
	assert.Contains(t, out, "1. Thread #1")
	assert.Contains(t, out, "Sender: forge")
	assert.Contains(t, out, "Messages: 3 | Depth: 1 | Participants: 2")
	assert.Contains(t, out, "Preview: What is consciousness?")
	assert.Contains(t, out, "2. Thread #10")
	assert.Contains(t, out, "Messages: 1 | Depth: 0 | Participants: 1")
	// Non-verbose output omits channel and duration detail.
	assert.NotContains(t, out, "Channel:")
	assert.NotContains(t, out, "Duration:")
}

func TestFormatThreadListPrefersDisplayName(t *testing.T) {
	color.NoColor = true

	thread := displayThread(1, "U123ABC", "hello", 0)
	thread.Root.SenderName = "Forge"

	out := formatThreadList([]*types.Thread{thread}, false)
	assert.Contains(t, out, "Sender: Forge")
	assert.NotContains(t, out, "Sender: U123ABC")
}

func TestFormatThreadListVerbose(t *testing.T) {
	color.NoColor = true

	out := formatThreadList([]*types.Thread{displayThread(1, "forge", "hello", 1)}, true)

	assert.Contains(t, out, "Channel: general")
	assert.Contains(t, out, "Participants: forge, replier")
	assert.Contains(t, out, "Duration: 5.0 min")
}

func TestRenderThreadFormats(t *testing.T) {
	thread := displayThread(1, "forge", "hello", 1)

	md, err := renderThread(thread, "markdown", true)
	assert.NoError(t, err)
	assert.Contains(t, md, "# Conversation Thread #1")

	alias, err := renderThread(thread, "md", true)
	assert.NoError(t, err)
	assert.Equal(t, md, alias)

	jsonOut, err := renderThread(thread, "json", true)
	assert.NoError(t, err)
	assert.Contains(t, jsonOut, "\"root_id\": 1")

	text, err := renderThread(thread, "text", true)
	assert.NoError(t, err)
	assert.Contains(t, text, "CONVERSATION THREAD #1")

	_, err = renderThread(thread, "xml", true)
	assert.Error(t, err)
}
