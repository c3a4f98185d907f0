package cpamm

import (
	"math"
	"math/big"

	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// the on-chain program computes quotes in checked u128, anything wider fails
var maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

type Model struct {
	ProgramId solana.PublicKey
	Pool      *KeyedPool
	States    map[string]interface{}
}

func (m *Model) Program() solana.PublicKey {
	return m.ProgramId
}

func (m *Model) Id() solana.PublicKey {
	return m.Pool.Key
}

func (m *Model) TokenPair() []solana.PublicKey {
	return []solana.PublicKey{m.Pool.TokenA, m.Pool.TokenB}
}

func (m *Model) CurrentSlot() uint64 {
	return m.Pool.Height
}

func (m *Model) SetState(key string, value interface{}) error {
	m.States[key] = value
	return nil
}

func (m *Model) HasState(key string) bool {
	if _, ok := m.States[key]; ok {
		return true
	}
	return false
}

func (m *Model) State(key string) interface{} {
	if item, ok := m.States[key]; ok {
		return item
	}
	return nil
}

func (m *Model) Type() string {
	return program.AMM
}

func (m *Model) Clone() program.Model {
	pool := *m.Pool
	c := &Model{
		ProgramId: m.ProgramId,
		Pool:      &pool,
		States:    make(map[string]interface{}),
	}
	for key, value := range m.States {
		c.States[key] = value
	}
	return c
}

func (m *Model) reserves(token solana.PublicKey) (uint64, uint64, solana.PublicKey, error) {
	if token == m.Pool.TokenA {
		return m.Pool.ReserveA, m.Pool.ReserveB, m.Pool.TokenB, nil
	}
	if token == m.Pool.TokenB {
		return m.Pool.ReserveB, m.Pool.ReserveA, m.Pool.TokenA, nil
	}
	return 0, 0, solana.PublicKey{}, program.ErrAssetNotInPool
}

func (m *Model) Swap(token solana.PublicKey, amount uint64) (*program.SwapResult, error) {
	reserveIn, reserveOut, tokenOut, err := m.reserves(token)
	if err != nil {
		return nil, err
	}
	if m.Pool.FeeBps >= program.FeeDenominator {
		return nil, program.ErrInvalidPoolState
	}
	if reserveIn == 0 || reserveOut == 0 {
		return nil, program.ErrZeroLiquidity
	}
	feeFactor := uint64(program.FeeDenominator) - uint64(m.Pool.FeeBps)
	amountInWithFee := new(big.Int).Mul(
		new(big.Int).SetUint64(amount),
		new(big.Int).SetUint64(feeFactor),
	)
	numerator := new(big.Int).Mul(amountInWithFee, new(big.Int).SetUint64(reserveOut))
	if numerator.Cmp(maxU128) > 0 {
		return nil, program.ErrOverflow
	}
	denominator := new(big.Int).Add(
		new(big.Int).Mul(
			new(big.Int).SetUint64(reserveIn),
			new(big.Int).SetUint64(program.FeeDenominator),
		),
		amountInWithFee,
	)
	if denominator.Cmp(maxU128) > 0 {
		return nil, program.ErrOverflow
	}
	amountOut := new(big.Int).Div(numerator, denominator).Uint64()
	if amount > math.MaxUint64-reserveIn {
		return nil, program.ErrOverflow
	}
	fee := new(big.Int).Div(
		new(big.Int).Mul(
			new(big.Int).SetUint64(amount),
			new(big.Int).SetUint64(uint64(m.Pool.FeeBps)),
		),
		new(big.Int).SetUint64(program.FeeDenominator),
	).Uint64()
	sr := &program.SwapResult{
		TokenIn:       token,
		AmountIn:      amount,
		SlotIn:        m.Pool.Height,
		TokenOut:      tokenOut,
		AmountOut:     amountOut,
		SlotOut:       m.Pool.Height,
		FeeAmount:     fee,
		NewReserveIn:  reserveIn + amount,
		NewReserveOut: reserveOut - amountOut,
	}
	return sr, nil
}

func (m *Model) SpotPrice(token solana.PublicKey) (decimal.Decimal, error) {
	reserveIn, reserveOut, _, err := m.reserves(token)
	if err != nil {
		return decimal.Zero, err
	}
	if reserveIn == 0 || reserveOut == 0 {
		return decimal.Zero, program.ErrZeroLiquidity
	}
	price := decimal.NewFromBigInt(new(big.Int).SetUint64(reserveOut), 0).
		Div(decimal.NewFromBigInt(new(big.Int).SetUint64(reserveIn), 0))
	return price, nil
}
