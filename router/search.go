package router

import (
	"container/heap"
	"log"

	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
)

type pathNode struct {
	index  int
	amount uint64
	hops   int
	seq    uint64
	models []program.Model
}

// frontier ordering: greatest output first, then fewer hops, then earlier discovery
type nodeHeap []*pathNode

func (h nodeHeap) Len() int {
	return len(h)
}

func (h nodeHeap) Less(i, j int) bool {
	if h[i].amount != h[j].amount {
		return h[i].amount > h[j].amount
	}
	if h[i].hops != h[j].hops {
		return h[i].hops < h[j].hops
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *nodeHeap) Push(x interface{}) {
	*h = append(*h, x.(*pathNode))
}

func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return item
}

type bestEntry struct {
	amount uint64
	hops   int
}

type SearchResult struct {
	TokenIn   solana.PublicKey
	AmountIn  uint64
	TokenOut  solana.PublicKey
	AmountOut uint64
	Models    []program.Model
	// Exact is false when the expansion budget ran out and the result is only
	// the best candidate seen so far
	Exact bool
}

// Search is a best first walk over the pool graph, candidates ordered by
// output descending. A pool pays out more when fed more, so arriving at a
// token with a greater amount dominates every later arrival with less; the
// dominance table prunes those. Candidates reaching tokenOut are recorded
// and never expanded, and the best one when the frontier drains is the
// answer. A skewed pool can pay out more than it takes in, so a low amount
// candidate may still spawn the winner; the walk therefore runs to
// exhaustion instead of stopping at the first drawn tokenOut candidate.
// maxExpansions bounds the number of candidates drawn when positive, past
// the bound the best candidate recorded so far is returned with Exact
// false.
func (g *Graph) Search(tokenIn solana.PublicKey, amountIn uint64, tokenOut solana.PublicKey, maxHops int, maxExpansions int, logger *log.Logger) (*SearchResult, error) {
	if tokenIn == tokenOut {
		return nil, program.ErrInvalidInput
	}
	if amountIn == 0 {
		return nil, program.ErrInvalidInput
	}
	if g.Size() == 0 {
		return nil, program.ErrInvalidInput
	}
	if maxHops < 1 {
		maxHops = 1
	}
	if maxHops > program.MaxRouteHops {
		maxHops = program.MaxRouteHops
	}
	sourceIndex := g.Index(tokenIn)
	targetIndex := g.Index(tokenOut)
	if sourceIndex == -1 || targetIndex == -1 {
		return nil, program.ErrRouteNotFound
	}
	frontier := make(nodeHeap, 0, g.Size())
	seq := uint64(0)
	heap.Push(&frontier, &pathNode{
		index:  sourceIndex,
		amount: amountIn,
		hops:   0,
		seq:    seq,
		models: make([]program.Model, 0),
	})
	best := make(map[int]*bestEntry, g.Size())
	best[sourceIndex] = &bestEntry{amount: amountIn, hops: 0}
	finalized := make(map[int]uint64, g.Size())
	var found *pathNode
	exact := true
	drawn := 0
	for frontier.Len() > 0 {
		if maxExpansions > 0 && drawn >= maxExpansions {
			exact = false
			break
		}
		drawn++
		node := heap.Pop(&frontier).(*pathNode)
		if done, ok := finalized[node.index]; ok && done >= node.amount {
			continue
		}
		// routes end at the target, it is never expanded or finalized
		if node.index == targetIndex {
			continue
		}
		if node.hops >= maxHops {
			continue
		}
		finalized[node.index] = node.amount
		for _, edge := range g.Neighbors[node.index] {
			if _, ok := finalized[edge.OtherIndex]; ok {
				continue
			}
			swapResult, err := edge.Model.Swap(g.Indexes[node.index], node.amount)
			if err != nil {
				if logger != nil {
					logger.Printf("swap quote err: %v, program: %s, pool: %s", err, edge.Model.Program(), edge.Model.Id())
				}
				continue
			}
			if swapResult.AmountOut == 0 {
				continue
			}
			prev, ok := best[edge.OtherIndex]
			if ok && swapResult.AmountOut < prev.amount {
				continue
			}
			if ok && swapResult.AmountOut == prev.amount && node.hops+1 >= prev.hops {
				continue
			}
			best[edge.OtherIndex] = &bestEntry{amount: swapResult.AmountOut, hops: node.hops + 1}
			seq++
			models := make([]program.Model, 0, len(node.models)+1)
			models = append(models, node.models...)
			models = append(models, edge.Model)
			child := &pathNode{
				index:  edge.OtherIndex,
				amount: swapResult.AmountOut,
				hops:   node.hops + 1,
				seq:    seq,
				models: models,
			}
			// the push gate already proved this improves on every
			// earlier arrival at the target
			if edge.OtherIndex == targetIndex {
				found = child
			}
			heap.Push(&frontier, child)
		}
	}
	if found != nil {
		return &SearchResult{
			TokenIn:   tokenIn,
			AmountIn:  amountIn,
			TokenOut:  tokenOut,
			AmountOut: found.amount,
			Models:    found.models,
			Exact:     exact,
		}, nil
	}
	return nil, program.ErrRouteNotFound
}
