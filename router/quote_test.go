package router

import (
	"testing"

	"github.com/egaotan/solana-wayfinder/program"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaySteps(t *testing.T) {
	p1 := newPool(tokenX, tokenY, 1000000, 1000000, 30)
	p2 := newPool(tokenY, tokenZ, 1000000, 1000000, 30)

	steps, err := ReplaySteps([]program.Model{p1, p2}, tokenX, 1000)
	require.NoError(t, err)
	require.Equal(t, 2, len(steps))
	assert.Equal(t, tokenX, steps[0].TokenIn)
	assert.Equal(t, uint64(1000), steps[0].AmountIn)
	assert.Equal(t, tokenY, steps[0].TokenOut)
	assert.Equal(t, uint64(996), steps[0].AmountOut)
	assert.Equal(t, tokenY, steps[1].TokenIn)
	assert.Equal(t, uint64(996), steps[1].AmountIn)
	assert.Equal(t, tokenZ, steps[1].TokenOut)
	assert.Equal(t, uint64(992), steps[1].AmountOut)
}

func TestReplaySteps_Invalid(t *testing.T) {
	p1 := newPool(tokenX, tokenY, 1000000, 1000000, 30)

	_, err := ReplaySteps([]program.Model{}, tokenX, 1000)
	assert.Equal(t, program.ErrInvalidRoute, err)

	_, err = ReplaySteps([]program.Model{p1}, tokenX, 0)
	assert.Equal(t, program.ErrInvalidInput, err)

	_, err = ReplaySteps([]program.Model{p1}, tokenZ, 1000)
	assert.Equal(t, program.ErrAssetNotInPool, err)
}

func TestBuildQuote_Direct(t *testing.T) {
	p1 := newPool(tokenX, tokenY, 1000000, 2000000, 30)

	quote, err := BuildQuote([]program.Model{p1}, tokenX, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1992), quote.AmountOut)
	assert.Equal(t, uint64(3), quote.TotalFee)
	assert.True(t, quote.SpotPrice.Equal(decimal.NewFromInt(2)))
	assert.True(t, quote.RealizedPrice.Equal(decimal.RequireFromString("1.992")))
	assert.True(t, quote.PriceImpact.Equal(decimal.RequireFromString("0.4")))
	assert.Equal(t, 1, len(quote.Steps))
}

func TestBuildQuote_TwoHop(t *testing.T) {
	p1 := newPool(tokenX, tokenY, 1000000, 1000000, 30)
	p2 := newPool(tokenY, tokenZ, 1000000, 1000000, 30)

	quote, err := BuildQuote([]program.Model{p1, p2}, tokenX, 1000)
	require.NoError(t, err)
	assert.Equal(t, tokenZ, quote.TokenOut)
	assert.Equal(t, uint64(992), quote.AmountOut)
	// 3 on the first hop plus 2 on the second, each in its own input token
	assert.Equal(t, uint64(5), quote.TotalFee)
	assert.True(t, quote.SpotPrice.Equal(decimal.NewFromInt(1)))
	assert.True(t, quote.RealizedPrice.Equal(decimal.RequireFromString("0.992")))
	assert.True(t, quote.PriceImpact.Equal(decimal.RequireFromString("0.8")))
	assert.Equal(t, 2, len(quote.Steps))
}
