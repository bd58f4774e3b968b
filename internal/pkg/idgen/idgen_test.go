package idgen_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/progression-api/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	id := idgen.NewUUID("ach").Generate()
	require.True(t, strings.HasPrefix(id, "ach_"))

	_, err := uuid.Parse(strings.TrimPrefix(id, "ach_"))
	assert.NoError(t, err)

	bare := idgen.NewUUID("").Generate()
	_, err = uuid.Parse(bare)
	assert.NoError(t, err)
}

func TestSequentialGenerator_Concurrent(t *testing.T) {
	gen := idgen.NewSequential("player")

	var wg sync.WaitGroup
	seen := sync.Map{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, dup := seen.LoadOrStore(gen.Generate(), true)
			assert.False(t, dup)
		}()
	}
	wg.Wait()

	assert.Equal(t, "player_51", gen.Generate())
	assert.Equal(t, "2", func() string {
		g := idgen.NewSequential("")
		g.Generate()
		return g.Generate()
	}())
}
