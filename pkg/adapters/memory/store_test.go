package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/conduit/pkg/adapters/memory"
	"github.com/aretw0/conduit/pkg/ports/tests"
	"github.com/aretw0/conduit/pkg/wire"
)

func TestMemoryStore_Contract(t *testing.T) {
	tests.VerdictCacheContractTest(t, memory.NewStore())
}

func TestMemoryStore_ConcurrentUse(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("fp-%d", i%10)
			_ = store.Put(ctx, key, wire.Response{NumNodes: i, IsDAG: true})
			_, _, _ = store.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	if store.Len() != 10 {
		t.Errorf("expected 10 cached verdicts, got %d", store.Len())
	}
}
