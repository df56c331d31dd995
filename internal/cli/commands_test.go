package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cue-cards/internal/config"
	"cue-cards/internal/domain"
	apperrors "cue-cards/internal/errors"
	"cue-cards/internal/store"
)

func TestAddCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("adds card with known category", func(t *testing.T) {
		app, docs, out := setupTestApp(t, sampleData())

		cmd := NewAddCommand(app)
		cmd.Category = "Health"
		cmd.Repeat = 3
		cmd.Subtasks = []string{"Warm up", "Cool down"}
		require.NoError(t, cmd.Execute(ctx, []string{"Go", "for", "a", "run"}))

		data := storedData(t, docs)
		require.Len(t, data.Cards, 4)
		added := data.Cards[3]
		assert.NotEmpty(t, added.ID)
		assert.Equal(t, "Go for a run", added.Description)
		assert.Equal(t, "Health", added.Category)
		assert.Equal(t, 3, added.RepeatFrequency)
		assert.Nil(t, added.LastDone)
		require.Len(t, added.Subtasks, 2)
		assert.Equal(t, "Warm up", added.Subtasks[0].Text)
		assert.Equal(t, []string{"Home", "Health", "Family"}, data.Categories)
		assert.Contains(t, out.String(), "Added card "+added.ID+": Go for a run")
	})

	t.Run("new category joins the set", func(t *testing.T) {
		app, docs, _ := setupTestApp(t, sampleData())

		cmd := NewAddCommand(app)
		cmd.Category = "Garden"
		cmd.Once = true
		require.NoError(t, cmd.Execute(ctx, []string{"Prune roses"}))

		data := storedData(t, docs)
		assert.Equal(t, "Garden", data.Cards[3].Category)
		assert.True(t, data.Cards[3].DoesNotRepeat)
		assert.Equal(t, []string{"Home", "Health", "Family", "Garden"}, data.Categories)
	})

	t.Run("empty store uses default category", func(t *testing.T) {
		app, docs, _ := setupTestApp(t, nil)

		require.NoError(t, NewAddCommand(app).Execute(ctx, []string{"First card"}))

		data := storedData(t, docs)
		require.Len(t, data.Cards, 1)
		assert.Equal(t, domain.DefaultCategory, data.Cards[0].Category)
		assert.Equal(t, []string{domain.DefaultCategory}, data.Categories)
	})

	t.Run("blank description is rejected", func(t *testing.T) {
		app, docs, _ := setupTestApp(t, sampleData())

		err := NewAddCommand(app).Execute(ctx, []string{"   "})
		require.Error(t, err)
		assert.Equal(t, "failed to add card: description is required", err.Error())
		assert.Equal(t, 0, docs.Writes())
	})

	t.Run("missing description", func(t *testing.T) {
		app, _, _ := setupTestApp(t, sampleData())
		assert.Error(t, NewAddCommand(app).Execute(ctx, nil))
	})

	t.Run("repeat out of range", func(t *testing.T) {
		app, docs, _ := setupTestApp(t, sampleData())

		cmd := NewAddCommand(app)
		cmd.Repeat = 0
		err := cmd.Execute(ctx, []string{"Never"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "repeatFrequency must be between")
		assert.Equal(t, 0, docs.Writes())
	})
}

func TestEditCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("changes only given fields", func(t *testing.T) {
		seed := sampleData()
		seed.Cards[0].IsArchived = true
		app, docs, out := setupTestApp(t, seed)

		description := "Water the plants"
		repeat := 2
		cmd := NewEditCommand(app)
		cmd.Description = &description
		cmd.Repeat = &repeat
		require.NoError(t, cmd.Execute(ctx, []string{"abc1"}))

		card, ok := storedData(t, docs).FindCard("abc1")
		require.True(t, ok)
		assert.Equal(t, "Water the plants", card.Description)
		assert.Equal(t, 2, card.RepeatFrequency)
		assert.Equal(t, "Home", card.Category)
		assert.True(t, card.IsArchived)
		assert.Contains(t, out.String(), "Updated card abc1: Water the plants")
	})

	t.Run("replaces subtasks and adds category", func(t *testing.T) {
		seed := sampleData()
		seed.Cards[2].Subtasks = []domain.Subtask{{ID: "s1", Text: "Old"}}
		app, docs, _ := setupTestApp(t, seed)

		category := "Friends"
		cmd := NewEditCommand(app)
		cmd.Category = &category
		cmd.ClearSubtasks = true
		cmd.AddSubtasks = []string{"Pick a time"}
		require.NoError(t, cmd.Execute(ctx, []string{"xyz"}))

		data := storedData(t, docs)
		card, _ := data.FindCard("xyz9")
		assert.Equal(t, "Friends", card.Category)
		require.Len(t, card.Subtasks, 1)
		assert.Equal(t, "Pick a time", card.Subtasks[0].Text)
		assert.Contains(t, data.Categories, "Friends")
	})

	t.Run("removes and reorders subtasks", func(t *testing.T) {
		seed := sampleData()
		seed.Cards[0].Subtasks = []domain.Subtask{
			{ID: "s1", Text: "Kitchen"},
			{ID: "s2", Text: "Hall"},
			{ID: "s3", Text: "Balcony"},
			{ID: "s4", Text: "Bedroom"},
		}
		app, docs, _ := setupTestApp(t, seed)

		cmd := NewEditCommand(app)
		cmd.RemoveSubtasks = []int{2, 2}
		cmd.MoveSubtasks = []string{"3:1"}
		cmd.AddSubtasks = []string{"Porch"}
		require.NoError(t, cmd.Execute(ctx, []string{"abc1"}))

		card, _ := storedData(t, docs).FindCard("abc1")
		var texts []string
		for _, st := range card.Subtasks {
			texts = append(texts, st.Text)
		}
		assert.Equal(t, []string{"Bedroom", "Kitchen", "Balcony", "Porch"}, texts)
		assert.Equal(t, "s4", card.Subtasks[0].ID)
	})

	t.Run("rejects bad subtask positions", func(t *testing.T) {
		tests := []struct {
			name   string
			remove []int
			move   []string
		}{
			{name: "remove out of range", remove: []int{3}},
			{name: "remove zero", remove: []int{0}},
			{name: "move out of range", move: []string{"1:5"}},
			{name: "move without separator", move: []string{"12"}},
			{name: "move not a number", move: []string{"a:1"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				seed := sampleData()
				seed.Cards[0].Subtasks = []domain.Subtask{{ID: "s1", Text: "A"}, {ID: "s2", Text: "B"}}
				app, docs, _ := setupTestApp(t, seed)

				cmd := NewEditCommand(app)
				cmd.RemoveSubtasks = tt.remove
				cmd.MoveSubtasks = tt.move
				err := cmd.Execute(ctx, []string{"abc1"})
				require.Error(t, err)
				assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))

				card, _ := storedData(t, docs).FindCard("abc1")
				assert.Len(t, card.Subtasks, 2, "nothing is saved")
			})
		}
	})

	t.Run("unknown card", func(t *testing.T) {
		app, _, _ := setupTestApp(t, sampleData())

		err := NewEditCommand(app).Execute(ctx, []string{"nope"})
		require.Error(t, err)
		assert.Equal(t, "failed to edit card: card not found: nope", err.Error())
	})

	t.Run("wrong argument count", func(t *testing.T) {
		app, _, _ := setupTestApp(t, sampleData())
		assert.Error(t, NewEditCommand(app).Execute(ctx, nil))
	})
}

func TestDeleteCommand(t *testing.T) {
	ctx := context.Background()
	app, docs, out := setupTestApp(t, sampleData())

	require.NoError(t, NewDeleteCommand(app).Execute(ctx, []string{"abc2"}))

	data := storedData(t, docs)
	assert.Len(t, data.Cards, 2)
	_, ok := data.FindCard("abc2")
	assert.False(t, ok)
	assert.Equal(t, []string{"Home", "Health", "Family"}, data.Categories)
	assert.Contains(t, out.String(), "Deleted card: Stretch")

	err := NewDeleteCommand(app).Execute(ctx, []string{"abc2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card not found")
}

func TestDoneCommand(t *testing.T) {
	ctx := context.Background()
	app, docs, out := setupTestApp(t, sampleData())

	require.NoError(t, NewDoneCommand(app).Execute(ctx, []string{"xyz9"}))

	card, _ := storedData(t, docs).FindCard("xyz9")
	require.NotNil(t, card.LastDone)
	assert.Contains(t, out.String(), "Done: Call mum")

	other, _ := storedData(t, docs).FindCard("abc1")
	assert.Nil(t, other.LastDone)
}

func TestDoneCommand_SaveFailure(t *testing.T) {
	backend := &flakyBackend{data: sampleData(), failSave: true}
	out := &bytes.Buffer{}
	app := NewApp(config.NewConfig(), backend, WithOutput(out))
	ctx := context.Background()

	err := NewDoneCommand(app).Execute(ctx, []string{"abc1"})
	require.Error(t, err)
	assert.Equal(t, "failed to mark card done: Failed to save changes. A storage error occurred. Please try again.", err.Error())
	assert.Empty(t, out.String())

	// The store resynced with the backend, so the card is still not done.
	card, _ := app.store.Data().FindCard("abc1")
	assert.Nil(t, card.LastDone)
}

func TestArchiveCommand(t *testing.T) {
	ctx := context.Background()
	app, docs, out := setupTestApp(t, sampleData())

	require.NoError(t, NewArchiveCommand(app, true).Execute(ctx, []string{"abc1"}))
	card, _ := storedData(t, docs).FindCard("abc1")
	assert.True(t, card.IsArchived)
	assert.Contains(t, out.String(), "Archived: Water plants")

	require.NoError(t, NewArchiveCommand(app, false).Execute(ctx, []string{"abc1"}))
	card, _ = storedData(t, docs).FindCard("abc1")
	assert.False(t, card.IsArchived)
	assert.Contains(t, out.String(), "Restored: Water plants")

	err := NewArchiveCommand(app, false).Execute(ctx, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unarchive card")
}

func TestListCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("lists every card", func(t *testing.T) {
		seed := sampleData()
		seed.Cards[1].IsArchived = true
		app, _, out := setupTestApp(t, seed)

		require.NoError(t, NewListCommand(app).Execute(ctx, nil))
		output := out.String()
		assert.Contains(t, output, "DESCRIPTION")
		assert.Contains(t, output, "Water plants")
		assert.Contains(t, output, "Stretch (archived)")
		assert.Contains(t, output, "never")
	})

	t.Run("flags due cards", func(t *testing.T) {
		now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
		yesterday := now.AddDate(0, 0, -1)
		lastWeek := now.AddDate(0, 0, -7)
		seed := sampleData()
		seed.Cards[0].LastDone = &yesterday
		seed.Cards[0].RepeatFrequency = 3
		seed.Cards[1].LastDone = &lastWeek

		out := &bytes.Buffer{}
		app := NewApp(config.NewConfig(), &flakyBackend{data: seed}, WithOutput(out),
			WithStoreOptions(store.WithClock(func() time.Time { return now })))

		require.NoError(t, NewListCommand(app).Execute(ctx, nil))
		lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
		require.Len(t, lines, 4)
		assert.True(t, strings.HasSuffix(lines[1], "-"), "Water plants done yesterday, repeats every 3 days")
		assert.True(t, strings.HasSuffix(lines[2], "due"), "Stretch done a week ago")
		assert.True(t, strings.HasSuffix(lines[3], "due"), "Call mum never done")
	})

	t.Run("filters by category ignoring case", func(t *testing.T) {
		app, _, out := setupTestApp(t, sampleData())

		require.NoError(t, NewListCommand(app).Execute(ctx, []string{"FAMILY"}))
		assert.Contains(t, out.String(), "Call mum")
		assert.NotContains(t, out.String(), "Water plants")
	})

	t.Run("no matches", func(t *testing.T) {
		app, _, out := setupTestApp(t, sampleData())

		require.NoError(t, NewListCommand(app).Execute(ctx, []string{"zzz"}))
		assert.Contains(t, out.String(), "No tasks found matching your search.")
	})
}

func TestCategoriesCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("counts active cards", func(t *testing.T) {
		seed := sampleData()
		seed.Cards = append(seed.Cards, testCard("h2", "Meditate", "Health"))
		seed.Cards[0].IsArchived = true
		app, _, out := setupTestApp(t, seed)

		require.NoError(t, NewCategoriesCommand(app).Execute(ctx, nil))
		assert.Equal(t, "CATEGORY  ACTIVE\nHome      0\nHealth    2\nFamily    1\n", out.String())
	})

	t.Run("empty set", func(t *testing.T) {
		app, _, out := setupTestApp(t, nil)

		require.NoError(t, NewCategoriesCommand(app).Execute(ctx, nil))
		assert.Contains(t, out.String(), "No categories yet.")
	})
}

func TestAddCategoryCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("adds trimmed name", func(t *testing.T) {
		app, docs, out := setupTestApp(t, sampleData())

		require.NoError(t, NewAddCategoryCommand(app).Execute(ctx, []string{"  Garden "}))
		assert.Equal(t, []string{"Home", "Health", "Family", "Garden"}, storedData(t, docs).Categories)
		assert.Contains(t, out.String(), "Added category: Garden")
	})

	t.Run("existing name is not duplicated", func(t *testing.T) {
		app, docs, out := setupTestApp(t, sampleData())

		require.NoError(t, NewAddCategoryCommand(app).Execute(ctx, []string{"Home"}))
		assert.Equal(t, 0, docs.Writes())
		assert.Contains(t, out.String(), "Category already exists: Home")
	})

	t.Run("blank name", func(t *testing.T) {
		app, _, _ := setupTestApp(t, sampleData())

		err := NewAddCategoryCommand(app).Execute(ctx, []string{" "})
		assert.Error(t, err)
	})
}

func TestCommandRegistry(t *testing.T) {
	app, _, _ := setupTestApp(t, sampleData())
	registry := NewCommandRegistry(app)

	for _, name := range []string{"session", "list", "categories", "add-category", "delete", "done", "archive", "unarchive"} {
		_, ok := registry.Get(name)
		assert.True(t, ok, "command %s should be registered", name)
	}

	_, ok := registry.Get("start")
	assert.False(t, ok)

	assert.Equal(t,
		"usage: cc <add-category|archive|categories|delete|done|list|session|unarchive> [args]",
		registry.GetUsage())
}
