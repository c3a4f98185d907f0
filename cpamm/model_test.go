package cpamm

import (
	"math"
	"testing"

	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestModel(reserveA uint64, reserveB uint64, feeBps uint16) *Model {
	key := solana.NewWallet().PublicKey()
	pool := &KeyedPool{
		Key:    key,
		Height: 100,
		PoolLayout: PoolLayout{
			Address:  key,
			TokenA:   program.USDC,
			TokenB:   program.USDT,
			FeeBps:   feeBps,
			ReserveA: reserveA,
			ReserveB: reserveB,
		},
	}
	return &Model{
		ProgramId: program.CpAmm,
		Pool:      pool,
		States:    make(map[string]interface{}),
	}
}

func TestModel_Swap(t *testing.T) {
	model := newTestModel(1000000, 2000000, 30)
	result, err := model.Swap(program.USDC, 1000)
	assert.NoError(t, err)
	assert.Equal(t, program.USDT, result.TokenOut)
	assert.Equal(t, uint64(1992), result.AmountOut)
	assert.Equal(t, uint64(3), result.FeeAmount)
	assert.Equal(t, uint64(1001000), result.NewReserveIn)
	assert.Equal(t, uint64(1998008), result.NewReserveOut)
	assert.Equal(t, uint64(100), result.SlotIn)
	assert.Equal(t, uint64(100), result.SlotOut)
}

func TestModel_SwapReverse(t *testing.T) {
	model := newTestModel(1000000, 2000000, 30)
	result, err := model.Swap(program.USDT, 1000)
	assert.NoError(t, err)
	assert.Equal(t, program.USDC, result.TokenOut)
	assert.Equal(t, uint64(498), result.AmountOut)
	assert.Equal(t, uint64(3), result.FeeAmount)
}

func TestModel_SwapZeroAmount(t *testing.T) {
	model := newTestModel(1000000, 2000000, 30)
	result, err := model.Swap(program.USDC, 0)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), result.AmountOut)
	assert.Equal(t, uint64(0), result.FeeAmount)
}

func TestModel_SwapZeroFee(t *testing.T) {
	model := newTestModel(1000000, 2000000, 0)
	result, err := model.Swap(program.USDC, 1000)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1998), result.AmountOut)
	assert.Equal(t, uint64(0), result.FeeAmount)
}

func TestModel_SwapMaxFee(t *testing.T) {
	model := newTestModel(1000000, 2000000, 9999)
	result, err := model.Swap(program.USDC, 1000)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), result.AmountOut)
	assert.Equal(t, uint64(999), result.FeeAmount)
}

func TestModel_SwapWrongToken(t *testing.T) {
	model := newTestModel(1000000, 2000000, 30)
	_, err := model.Swap(program.SOL, 1000)
	assert.Equal(t, program.ErrAssetNotInPool, err)
}

func TestModel_SwapZeroLiquidity(t *testing.T) {
	model := newTestModel(0, 2000000, 30)
	_, err := model.Swap(program.USDC, 1000)
	assert.Equal(t, program.ErrZeroLiquidity, err)

	model = newTestModel(1000000, 0, 30)
	_, err = model.Swap(program.USDC, 1000)
	assert.Equal(t, program.ErrZeroLiquidity, err)
}

func TestModel_SwapInvalidFee(t *testing.T) {
	model := newTestModel(1000000, 2000000, 10000)
	_, err := model.Swap(program.USDC, 1000)
	assert.Equal(t, program.ErrInvalidPoolState, err)
}

func TestModel_SwapOverflow(t *testing.T) {
	model := newTestModel(1000000, math.MaxUint64, 0)
	_, err := model.Swap(program.USDC, math.MaxUint64)
	assert.Equal(t, program.ErrOverflow, err)

	model = newTestModel(1000000, 2000000, 30)
	_, err = model.Swap(program.USDC, math.MaxUint64)
	assert.Equal(t, program.ErrOverflow, err)
}

func TestModel_SpotPrice(t *testing.T) {
	model := newTestModel(1000000, 2000000, 30)
	price, err := model.SpotPrice(program.USDC)
	assert.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(2)))

	price, err = model.SpotPrice(program.USDT)
	assert.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("0.5")))

	_, err = model.SpotPrice(program.SOL)
	assert.Equal(t, program.ErrAssetNotInPool, err)

	model = newTestModel(0, 2000000, 30)
	_, err = model.SpotPrice(program.USDC)
	assert.Equal(t, program.ErrZeroLiquidity, err)
}

func TestModel_Clone(t *testing.T) {
	model := newTestModel(1000000, 2000000, 30)
	model.SetState(program.StateUsed, true)
	clone := model.Clone()
	model.Pool.ReserveA = 5000000
	model.Pool.ReserveB = 5000000

	result, err := clone.Swap(program.USDC, 1000)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1992), result.AmountOut)
	assert.True(t, clone.HasState(program.StateUsed))
	assert.Equal(t, model.Id(), clone.Id())
}
