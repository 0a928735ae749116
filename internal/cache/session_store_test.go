package cache

import (
	"fmt"
	"sync"
	"testing"

	"adaptivequiz/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreLifecycle(t *testing.T) {
	s := NewSessionStore()

	entry, err := s.Create(&model.QuizSession{ID: "s1", UserID: "u1"})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 1, s.Len())

	_, err = s.Create(&model.QuizSession{ID: "s1"})
	assert.ErrorIs(t, err, ErrSessionExists)

	got, ok := s.Get("s1")
	require.True(t, ok)
	assert.Same(t, entry, got)
	assert.Equal(t, "u1", got.Session.UserID)

	assert.True(t, s.Delete("s1"))
	assert.False(t, s.Delete("s1"))
	_, ok = s.Get("s1")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestSessionStoreConcurrentAccess(t *testing.T) {
	s := NewSessionStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i)
			_, err := s.Create(&model.QuizSession{ID: id})
			assert.NoError(t, err)
			_, ok := s.Get(id)
			assert.True(t, ok)
			if i%2 == 0 {
				s.Delete(id)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 25, s.Len())
}
