package router

import (
	"testing"

	"github.com/egaotan/solana-wayfinder/cpamm"
	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
)

var (
	tokenW = solana.NewWallet().PublicKey()
	tokenX = solana.NewWallet().PublicKey()
	tokenY = solana.NewWallet().PublicKey()
	tokenZ = solana.NewWallet().PublicKey()
)

func newPool(tokenA solana.PublicKey, tokenB solana.PublicKey, reserveA uint64, reserveB uint64, feeBps uint16) *cpamm.Model {
	key := solana.NewWallet().PublicKey()
	pool := &cpamm.KeyedPool{
		Key:    key,
		Height: 100,
		PoolLayout: cpamm.PoolLayout{
			Address:  key,
			TokenA:   tokenA,
			TokenB:   tokenB,
			FeeBps:   feeBps,
			ReserveA: reserveA,
			ReserveB: reserveB,
		},
	}
	return &cpamm.Model{
		ProgramId: program.CpAmm,
		Pool:      pool,
		States:    make(map[string]interface{}),
	}
}

func buildGraph(models ...program.Model) *Graph {
	g := NewGraph()
	for _, model := range models {
		g.AddModel(model)
	}
	return g
}

func TestGraph_AddModel(t *testing.T) {
	p1 := newPool(tokenX, tokenY, 1000000, 1000000, 30)
	p2 := newPool(tokenY, tokenZ, 1000000, 1000000, 30)
	g := buildGraph(p1, p2)

	assert.Equal(t, 3, g.Size())
	assert.Equal(t, 0, g.Index(tokenX))
	assert.Equal(t, 1, g.Index(tokenY))
	assert.Equal(t, 2, g.Index(tokenZ))
	assert.Equal(t, -1, g.Index(tokenW))

	assert.Equal(t, 1, len(g.Neighbors[0]))
	assert.Equal(t, tokenY, g.Neighbors[0][0].Other)
	assert.Equal(t, 1, g.Neighbors[0][0].OtherIndex)

	assert.Equal(t, 2, len(g.Neighbors[1]))
	assert.Equal(t, p1.Id(), g.Neighbors[1][0].Model.Id())
	assert.Equal(t, p2.Id(), g.Neighbors[1][1].Model.Id())
	assert.Equal(t, 0, g.Neighbors[1][0].OtherIndex)
	assert.Equal(t, 2, g.Neighbors[1][1].OtherIndex)
}

func TestGraph_NeighborOrder(t *testing.T) {
	p1 := newPool(tokenX, tokenY, 1000000, 1000000, 30)
	p2 := newPool(tokenX, tokenY, 2000000, 2000000, 30)
	p3 := newPool(tokenX, tokenY, 3000000, 3000000, 30)
	g := buildGraph(p1, p2, p3)

	assert.Equal(t, 2, g.Size())
	edges := g.Neighbors[g.Index(tokenX)]
	assert.Equal(t, 3, len(edges))
	assert.Equal(t, p1.Id(), edges[0].Model.Id())
	assert.Equal(t, p2.Id(), edges[1].Model.Id())
	assert.Equal(t, p3.Id(), edges[2].Model.Id())
}
