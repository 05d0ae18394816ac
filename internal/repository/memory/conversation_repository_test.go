package memory

import (
	"testing"

	"intent-search-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestConversationRepository(t *testing.T) {
	repo := NewConversationRepository(3)

	t.Run("unknown session returns nil", func(t *testing.T) {
		assert.Nil(t, repo.GetHistory("missing"))
	})

	t.Run("save and get round trip", func(t *testing.T) {
		history := []store.Turn{{Query: "headphones", Response: "here you go"}}
		repo.SaveHistory("s1", history)

		got := repo.GetHistory("s1")
		if assert.Len(t, got, 1) {
			assert.Equal(t, "headphones", got[0].Query)
		}
	})

	t.Run("save trims to the history limit", func(t *testing.T) {
		history := []store.Turn{
			{Query: "one"}, {Query: "two"}, {Query: "three"}, {Query: "four"}, {Query: "five"},
		}
		repo.SaveHistory("s2", history)

		got := repo.GetHistory("s2")
		if assert.Len(t, got, 3) {
			assert.Equal(t, "three", got[0].Query)
			assert.Equal(t, "five", got[2].Query)
		}
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		repo.SaveHistory("s3", []store.Turn{{Query: "tablets"}})

		assert.Len(t, repo.GetHistory("s3"), 1)
		assert.Len(t, repo.GetHistory("s1"), 1)
	})

	t.Run("clear removes a single session", func(t *testing.T) {
		repo.SaveHistory("s4", []store.Turn{{Query: "gone soon"}})
		repo.Clear("s4")

		assert.Nil(t, repo.GetHistory("s4"))
		assert.NotNil(t, repo.GetHistory("s1"))
	})
}

func TestNewConversationRepositoryDefaultLimit(t *testing.T) {
	repo := NewConversationRepository(0)

	history := make([]store.Turn, 15)
	repo.SaveHistory("s", history)

	assert.Len(t, repo.GetHistory("s"), 10)
}
