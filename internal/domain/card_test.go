package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	card := NewCard("Water plants", "Home", 3)

	assert.NotEmpty(t, card.ID)
	assert.Equal(t, "Water plants", card.Description)
	assert.Equal(t, "Home", card.Category)
	assert.Equal(t, 3, card.RepeatFrequency)
	assert.Nil(t, card.LastDone)
	assert.False(t, card.IsArchived)

	other := NewCard("Water plants", "Home", 3)
	assert.NotEqual(t, card.ID, other.ID, "ids should be unique")
}

func TestNewSubtask(t *testing.T) {
	sub := NewSubtask("Buy soil")

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "Buy soil", sub.Text)
	assert.False(t, sub.IsCompleted)
}

func TestCard_IsActive(t *testing.T) {
	assert.True(t, Card{ID: "a"}.IsActive())
	assert.False(t, Card{ID: "a", IsArchived: true}.IsActive())
}

func TestCard_IsDue(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	twoDaysAgo := now.AddDate(0, 0, -2)
	yesterday := now.AddDate(0, 0, -1)

	tests := []struct {
		name     string
		card     Card
		expected bool
	}{
		{"never done", Card{RepeatFrequency: 7}, true},
		{"window elapsed", Card{RepeatFrequency: 2, LastDone: &twoDaysAgo}, true},
		{"window not elapsed", Card{RepeatFrequency: 2, LastDone: &yesterday}, false},
		{"done non-repeating", Card{RepeatFrequency: 1, LastDone: &twoDaysAgo, DoesNotRepeat: true}, false},
		{"never done non-repeating", Card{RepeatFrequency: 1, DoesNotRepeat: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.card.IsDue(now))
		})
	}
}

func TestCard_MarkDone(t *testing.T) {
	card := Card{ID: "a", Description: "X", Category: "Work", RepeatFrequency: 1}
	at := time.Date(2024, 5, 10, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	done := card.MarkDone(at)

	require.NotNil(t, done.LastDone)
	assert.True(t, done.LastDone.Equal(at))
	assert.Equal(t, time.UTC, done.LastDone.Location())
	assert.Nil(t, card.LastDone, "original card must not change")

	done.LastDone = nil
	assert.Equal(t, card, done, "only lastDone changes")
}

func TestCard_ToggleSubtask(t *testing.T) {
	card := Card{Subtasks: []Subtask{{ID: "s1", Text: "one"}, {ID: "s2", Text: "two"}}}

	assert.True(t, card.ToggleSubtask("s2"))
	assert.True(t, card.Subtasks[1].IsCompleted)
	assert.Equal(t, 1, card.CompletedSubtasks())

	assert.True(t, card.ToggleSubtask("s2"))
	assert.False(t, card.Subtasks[1].IsCompleted)

	assert.False(t, card.ToggleSubtask("missing"))
}

func TestCard_Clone(t *testing.T) {
	done := time.Now()
	card := Card{ID: "a", LastDone: &done, Subtasks: []Subtask{{ID: "s1", Text: "one"}}}

	clone := card.Clone()
	clone.Subtasks[0].Text = "changed"
	*clone.LastDone = done.Add(time.Hour)

	assert.Equal(t, "one", card.Subtasks[0].Text)
	assert.True(t, card.LastDone.Equal(done))
}

func TestCard_JSONShape(t *testing.T) {
	card := Card{ID: "a", Description: "X", Category: "Work", RepeatFrequency: 1}

	data, err := json.Marshal(card)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","description":"X","category":"Work","lastDone":null,"repeatFrequency":1}`, string(data))

	var decoded Card
	require.NoError(t, json.Unmarshal([]byte(`{
		"id":"b","description":"Y","category":"Home","lastDone":"2024-01-02T03:04:05.000Z",
		"repeatFrequency":2,"doesNotRepeat":true,"isArchived":true,
		"subtasks":[{"id":"s","text":"t","isCompleted":true}]}`), &decoded))

	require.NotNil(t, decoded.LastDone)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), decoded.LastDone.UTC())
	assert.True(t, decoded.DoesNotRepeat)
	assert.True(t, decoded.IsArchived)
	assert.Equal(t, []Subtask{{ID: "s", Text: "t", IsCompleted: true}}, decoded.Subtasks)
}
