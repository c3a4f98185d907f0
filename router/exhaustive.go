package router

import (
	"log"

	"github.com/badgerodon/collections/stack"
	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
)

type walkNode struct {
	index  int
	amount uint64
	hops   int
	path   []int
	models []program.Model
}

func (n *walkNode) visited(index int) bool {
	for _, item := range n.path {
		if item == index {
			return true
		}
	}
	return false
}

// Exhaustive walks every simple path from tokenIn to tokenOut within the hop
// bound and keeps the one paying out the most, ties resolved by fewer hops
// and then first found. It answers the same question as Search by brute
// force, only sensible on small snapshots.
func (g *Graph) Exhaustive(tokenIn solana.PublicKey, amountIn uint64, tokenOut solana.PublicKey, maxHops int, logger *log.Logger) (*SearchResult, error) {
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
	var best *SearchResult
	stack := stack.New()
	stack.Push(&walkNode{
		index:  sourceIndex,
		amount: amountIn,
		hops:   0,
		path:   []int{sourceIndex},
		models: make([]program.Model, 0),
	})
	for stack.Len() > 0 {
		node := stack.Pop().(*walkNode)
		if node.index == targetIndex {
			if best == nil || node.amount > best.AmountOut ||
				(node.amount == best.AmountOut && node.hops < len(best.Models)) {
				best = &SearchResult{
					TokenIn:   tokenIn,
					AmountIn:  amountIn,
					TokenOut:  tokenOut,
					AmountOut: node.amount,
					Models:    node.models,
					Exact:     true,
				}
			}
			continue
		}
		if node.hops >= maxHops {
			continue
		}
		// reversed so pops follow the neighbor order
		neighbors := g.Neighbors[node.index]
		for i := len(neighbors) - 1; i >= 0; i-- {
			edge := neighbors[i]
			if node.visited(edge.OtherIndex) {
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
			path := make([]int, 0, len(node.path)+1)
			path = append(path, node.path...)
			path = append(path, edge.OtherIndex)
			models := make([]program.Model, 0, len(node.models)+1)
			models = append(models, node.models...)
			models = append(models, edge.Model)
			stack.Push(&walkNode{
				index:  edge.OtherIndex,
				amount: swapResult.AmountOut,
				hops:   node.hops + 1,
				path:   path,
				models: models,
			})
		}
	}
	if best == nil {
		return nil, program.ErrRouteNotFound
	}
	return best, nil
}
