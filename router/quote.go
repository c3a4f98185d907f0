package router

import (
	"math/big"

	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

type Quote struct {
	TokenIn       solana.PublicKey
	AmountIn      uint64
	TokenOut      solana.PublicKey
	AmountOut     uint64
	TotalFee      uint64
	SpotPrice     decimal.Decimal
	RealizedPrice decimal.Decimal
	PriceImpact   decimal.Decimal
	Steps         []*program.SwapResult
}

// ReplaySteps feeds amountIn through the pools in order and records every
// intermediate swap. The executor uses it against refreshed reserves to
// revalidate a stored route before committing it.
func ReplaySteps(models []program.Model, tokenIn solana.PublicKey, amountIn uint64) ([]*program.SwapResult, error) {
	if len(models) == 0 {
		return nil, program.ErrInvalidRoute
	}
	if amountIn == 0 {
		return nil, program.ErrInvalidInput
	}
	steps := make([]*program.SwapResult, 0, len(models))
	token := tokenIn
	amount := amountIn
	for _, model := range models {
		swapResult, err := model.Swap(token, amount)
		if err != nil {
			return nil, err
		}
		steps = append(steps, swapResult)
		token = swapResult.TokenOut
		amount = swapResult.AmountOut
	}
	return steps, nil
}

// BuildQuote replays the route and derives the trade summary. The fee is
// summed over hops in each hop's input token. The price impact is the
// percentage the realized price falls short of the first pool's spot price.
func BuildQuote(models []program.Model, tokenIn solana.PublicKey, amountIn uint64) (*Quote, error) {
	steps, err := ReplaySteps(models, tokenIn, amountIn)
	if err != nil {
		return nil, err
	}
	totalFee := uint64(0)
	for _, step := range steps {
		totalFee += step.FeeAmount
	}
	spotPrice, err := models[0].SpotPrice(tokenIn)
	if err != nil {
		return nil, err
	}
	last := steps[len(steps)-1]
	realizedPrice := decimal.NewFromBigInt(new(big.Int).SetUint64(last.AmountOut), 0).
		Div(decimal.NewFromBigInt(new(big.Int).SetUint64(amountIn), 0))
	priceImpact := decimal.Zero
	if !spotPrice.IsZero() {
		priceImpact = spotPrice.Sub(realizedPrice).Div(spotPrice).Mul(decimal.NewFromInt(100))
	}
	quote := &Quote{
		TokenIn:       tokenIn,
		AmountIn:      amountIn,
		TokenOut:      last.TokenOut,
		AmountOut:     last.AmountOut,
		TotalFee:      totalFee,
		SpotPrice:     spotPrice,
		RealizedPrice: realizedPrice,
		PriceImpact:   priceImpact,
		Steps:         steps,
	}
	return quote, nil
}
