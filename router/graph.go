package router

import (
	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
)

type Edge struct {
	Model      program.Model
	Other      solana.PublicKey
	OtherIndex int
}

// Graph keeps one vertex per token and one edge per pool in each direction.
// Neighbor order follows the order models were added, the search relies on
// it for deterministic tie-breaking.
type Graph struct {
	Indexes   []solana.PublicKey
	Neighbors [][]*Edge
}

func NewGraph() *Graph {
	g := &Graph{
		Indexes:   make([]solana.PublicKey, 0),
		Neighbors: make([][]*Edge, 0),
	}
	return g
}

func (g *Graph) Index(token solana.PublicKey) int {
	for i, index := range g.Indexes {
		if index == token {
			return i
		}
	}
	return -1
}

func (g *Graph) upsertIndex(token solana.PublicKey) int {
	index := g.Index(token)
	if index != -1 {
		return index
	}
	g.Indexes = append(g.Indexes, token)
	g.Neighbors = append(g.Neighbors, make([]*Edge, 0))
	return len(g.Indexes) - 1
}

func (g *Graph) AddModel(model program.Model) {
	tokenPair := model.TokenPair()
	tokenAKey, tokenBKey := tokenPair[0], tokenPair[1]
	tokenAIndex := g.upsertIndex(tokenAKey)
	tokenBIndex := g.upsertIndex(tokenBKey)
	g.Neighbors[tokenAIndex] = append(g.Neighbors[tokenAIndex], &Edge{
		Model:      model,
		Other:      tokenBKey,
		OtherIndex: tokenBIndex,
	})
	g.Neighbors[tokenBIndex] = append(g.Neighbors[tokenBIndex], &Edge{
		Model:      model,
		Other:      tokenAKey,
		OtherIndex: tokenAIndex,
	})
}

func (g *Graph) Size() int {
	return len(g.Indexes)
}
