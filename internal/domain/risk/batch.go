package risk

import (
	"context"
	"fmt"
	"sync"
)

// BatchItem resultado de un par dentro de un lote. Err no nil no invalida el resto.
type BatchItem struct {
	Trigger MaterialTrigger
	Err     error
}

// EvaluateBatch evalúa los pares en paralelo con un pool acotado de goroutines.
// El resultado conserva el orden de inputs. Si el contexto se cancela devuelve
// lo evaluado hasta ese momento junto con ctx.Err().
func (c *Classifier) EvaluateBatch(ctx context.Context, inputs []Input) ([]BatchItem, error) {
	results := make([]BatchItem, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}

	workers := c.cfg.workers()
	if workers > len(inputs) {
		workers = len(inputs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = c.evaluateSafe(inputs[i])
			}
		}()
	}

feed:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results, ctx.Err()
}

// evaluateSafe aísla un panic en el par que lo produjo.
func (c *Classifier) evaluateSafe(in Input) (item BatchItem) {
	defer func() {
		if r := recover(); r != nil {
			item = BatchItem{Err: fmt.Errorf("evaluar %s/%s: %v", in.Snapshot.MaterialID, in.Snapshot.WarehouseID, r)}
		}
	}()
	t, err := c.Evaluate(in)
	return BatchItem{Trigger: t, Err: err}
}
