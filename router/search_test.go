package router

import (
	"math/rand"
	"testing"

	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_DirectRoute(t *testing.T) {
	p1 := newPool(tokenX, tokenY, 1000000, 2000000, 30)
	g := buildGraph(p1)

	sr, err := g.Search(tokenX, 1000, tokenY, 3, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1992), sr.AmountOut)
	assert.Equal(t, 1, len(sr.Models))
	assert.Equal(t, p1.Id(), sr.Models[0].Id())
	assert.True(t, sr.Exact)
}

func TestSearch_TwoHopRoute(t *testing.T) {
	p1 := newPool(tokenX, tokenY, 1000000, 1000000, 30)
	p2 := newPool(tokenY, tokenZ, 1000000, 1000000, 30)
	g := buildGraph(p1, p2)

	sr, err := g.Search(tokenX, 1000, tokenZ, 3, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(992), sr.AmountOut)
	assert.Equal(t, 2, len(sr.Models))
	assert.Equal(t, p1.Id(), sr.Models[0].Id())
	assert.Equal(t, p2.Id(), sr.Models[1].Id())
	assert.True(t, sr.Exact)
}

// a high fee direct pool competes with a low fee two hop path, the winner
// flips with the trade size
func alternativesGraph() (*Graph, *Graph) {
	direct := newPool(tokenX, tokenZ, 1000000, 1000000, 900)
	hop1 := newPool(tokenX, tokenY, 1000000, 1000000, 10)
	hop2 := newPool(tokenY, tokenZ, 1000000, 1000000, 10)
	return buildGraph(direct, hop1, hop2), buildGraph(direct.Clone(), hop1.Clone(), hop2.Clone())
}

func TestSearch_BestOfAlternatives(t *testing.T) {
	g, oracle := alternativesGraph()

	// small trade, the double low fee beats the single high fee
	sr, err := g.Search(tokenX, 1000, tokenZ, 3, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, len(sr.Models))
	expected, err := oracle.Exhaustive(tokenX, 1000, tokenZ, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, expected.AmountOut, sr.AmountOut)

	// large trade, the two hop path pays double slippage and loses
	sr, err = g.Search(tokenX, 1000000, tokenZ, 3, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, len(sr.Models))
	expected, err = oracle.Exhaustive(tokenX, 1000000, tokenZ, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, expected.AmountOut, sr.AmountOut)
}

// a pool holding far more of the out token than the in token pays out more
// than it takes in, so a small intermediate amount can still spawn the
// winning route after the direct candidate was already drawn
func TestSearch_SkewedReserves(t *testing.T) {
	direct := newPool(tokenX, tokenZ, 1000000, 500000, 0)
	thin := newPool(tokenX, tokenY, 1000000, 10000, 0)
	deep := newPool(tokenY, tokenZ, 100, 10000000, 0)
	g := buildGraph(direct, thin, deep)

	sr, err := g.Search(tokenX, 1000, tokenZ, 3, 0, nil)
	require.NoError(t, err)
	// the direct pool pays 499, the two hop path turns 9 into 825688
	assert.Equal(t, uint64(825688), sr.AmountOut)
	require.Equal(t, 2, len(sr.Models))
	assert.Equal(t, thin.Id(), sr.Models[0].Id())
	assert.Equal(t, deep.Id(), sr.Models[1].Id())
	assert.True(t, sr.Exact)

	expected, err := g.Exhaustive(tokenX, 1000, tokenZ, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, expected.AmountOut, sr.AmountOut)
}

func TestSearch_HopLimited(t *testing.T) {
	p1 := newPool(tokenX, tokenY, 1000000, 1000000, 30)
	p2 := newPool(tokenY, tokenZ, 1000000, 1000000, 30)
	g := buildGraph(p1, p2)

	_, err := g.Search(tokenX, 1000, tokenZ, 1, 0, nil)
	assert.Equal(t, program.ErrRouteNotFound, err)
}

func TestSearch_InvalidInput(t *testing.T) {
	p1 := newPool(tokenX, tokenY, 1000000, 1000000, 30)
	g := buildGraph(p1)

	_, err := g.Search(tokenX, 1000, tokenX, 3, 0, nil)
	assert.Equal(t, program.ErrInvalidInput, err)

	_, err = g.Search(tokenX, 0, tokenY, 3, 0, nil)
	assert.Equal(t, program.ErrInvalidInput, err)

	_, err = NewGraph().Search(tokenX, 1000, tokenY, 3, 0, nil)
	assert.Equal(t, program.ErrInvalidInput, err)
}

func TestSearch_UnknownToken(t *testing.T) {
	p1 := newPool(tokenX, tokenY, 1000000, 1000000, 30)
	g := buildGraph(p1)

	_, err := g.Search(tokenX, 1000, tokenW, 3, 0, nil)
	assert.Equal(t, program.ErrRouteNotFound, err)

	_, err = g.Search(tokenW, 1000, tokenY, 3, 0, nil)
	assert.Equal(t, program.ErrRouteNotFound, err)
}

func TestSearch_HopClamp(t *testing.T) {
	tokens := make([]solana.PublicKey, 7)
	for i := range tokens {
		tokens[i] = solana.NewWallet().PublicKey()
	}
	// a seven pool chain, only the first five hops are ever reachable
	g := NewGraph()
	for i := 0; i+1 < len(tokens); i++ {
		g.AddModel(newPool(tokens[i], tokens[i+1], 1000000, 1000000, 30))
	}

	_, err := g.Search(tokens[0], 1000, tokens[6], 100, 0, nil)
	assert.Equal(t, program.ErrRouteNotFound, err)

	sr, err := g.Search(tokens[0], 1000, tokens[5], 100, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, program.MaxRouteHops, len(sr.Models))

	// zero clamps up to a single hop
	sr, err = g.Search(tokens[0], 1000, tokens[1], 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, len(sr.Models))
	_, err = g.Search(tokens[0], 1000, tokens[2], 0, 0, nil)
	assert.Equal(t, program.ErrRouteNotFound, err)
}

func TestSearch_MoreHopsNeverWorse(t *testing.T) {
	g, _ := alternativesGraph()
	previous := uint64(0)
	for maxHops := 1; maxHops <= program.MaxRouteHops; maxHops++ {
		sr, err := g.Search(tokenX, 50000, tokenZ, maxHops, 0, nil)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(sr.Models), maxHops)
		assert.GreaterOrEqual(t, sr.AmountOut, previous)
		previous = sr.AmountOut
	}
}

func TestSearch_ParallelPoolTieBreak(t *testing.T) {
	p1 := newPool(tokenX, tokenY, 1000000, 1000000, 30)
	p2 := newPool(tokenX, tokenY, 1000000, 1000000, 30)
	g := buildGraph(p1, p2)

	sr, err := g.Search(tokenX, 1000, tokenY, 3, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, len(sr.Models))
	assert.Equal(t, p1.Id(), sr.Models[0].Id())
}

func TestSearch_SkipsDrainedPool(t *testing.T) {
	drained := newPool(tokenX, tokenY, 0, 0, 30)
	p1 := newPool(tokenX, tokenY, 1000000, 1000000, 30)
	g := buildGraph(drained, p1)

	sr, err := g.Search(tokenX, 1000, tokenY, 3, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, p1.Id(), sr.Models[0].Id())
}

func TestSearch_Budgeted(t *testing.T) {
	g, _ := alternativesGraph()

	// two draws reach the destination through the fallback only
	sr, err := g.Search(tokenX, 1000, tokenZ, 3, 2, nil)
	require.NoError(t, err)
	assert.False(t, sr.Exact)
	assert.Greater(t, sr.AmountOut, uint64(0))

	exact, err := g.Search(tokenX, 1000, tokenZ, 3, 0, nil)
	require.NoError(t, err)
	assert.True(t, exact.Exact)
	assert.GreaterOrEqual(t, exact.AmountOut, sr.AmountOut)
}

func TestSearch_BudgetTooSmall(t *testing.T) {
	p1 := newPool(tokenX, tokenY, 1000000, 1000000, 30)
	p2 := newPool(tokenY, tokenZ, 1000000, 1000000, 30)
	g := buildGraph(p1, p2)

	// one draw expands the source only, no candidate ever reaches the target
	_, err := g.Search(tokenX, 1000, tokenZ, 3, 1, nil)
	assert.Equal(t, program.ErrRouteNotFound, err)
}

func randomGraph(rng *rand.Rand, tokens []solana.PublicKey, pools int) *Graph {
	g := NewGraph()
	for i := 0; i < pools; i++ {
		a := rng.Intn(len(tokens))
		b := rng.Intn(len(tokens) - 1)
		if b >= a {
			b++
		}
		reserveA := uint64(rng.Intn(10000000) + 1000)
		reserveB := uint64(rng.Intn(10000000) + 1000)
		feeBps := uint16(rng.Intn(500))
		g.AddModel(newPool(tokens[a], tokens[b], reserveA, reserveB, feeBps))
	}
	return g
}

// the dijkstra variant must agree with brute force enumeration on every
// small graph
func TestSearch_MatchesExhaustive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tokens := []solana.PublicKey{tokenW, tokenX, tokenY, tokenZ, solana.NewWallet().PublicKey()}
	for round := 0; round < 200; round++ {
		g := randomGraph(rng, tokens, rng.Intn(6)+1)
		amountIn := uint64(rng.Intn(100000) + 1)
		maxHops := rng.Intn(program.MaxRouteHops) + 1
		for _, tokenOut := range tokens[1:] {
			expected, expectedErr := g.Exhaustive(tokens[0], amountIn, tokenOut, maxHops, nil)
			actual, actualErr := g.Search(tokens[0], amountIn, tokenOut, maxHops, 0, nil)
			if expectedErr != nil {
				assert.Equal(t, expectedErr, actualErr)
				continue
			}
			require.NoError(t, actualErr)
			assert.Equal(t, expected.AmountOut, actual.AmountOut)
			assert.LessOrEqual(t, len(actual.Models), maxHops)
		}
	}
}

// routes never revisit a token
func TestSearch_SimplePath(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tokens := []solana.PublicKey{tokenW, tokenX, tokenY, tokenZ}
	for round := 0; round < 100; round++ {
		g := randomGraph(rng, tokens, rng.Intn(6)+1)
		sr, err := g.Search(tokens[0], 10000, tokens[3], program.MaxRouteHops, 0, nil)
		if err != nil {
			continue
		}
		seen := map[solana.PublicKey]bool{tokens[0]: true}
		token := tokens[0]
		for _, model := range sr.Models {
			pair := model.TokenPair()
			next := pair[0]
			if next == token {
				next = pair[1]
			}
			assert.False(t, seen[next])
			seen[next] = true
			token = next
		}
		assert.Equal(t, tokens[3], token)
	}
}
