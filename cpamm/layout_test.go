package cpamm

import (
	"testing"

	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
)

func TestDecodePool(t *testing.T) {
	pool := &PoolLayout{
		Address:  solana.NewWallet().PublicKey(),
		TokenA:   program.USDC,
		TokenB:   program.USDT,
		FeeBps:   30,
		ReserveA: 1000000,
		ReserveB: 2000000,
	}
	data := EncodePool(pool)
	assert.Equal(t, PoolLayoutSize, len(data))

	decoded, err := DecodePool(data)
	assert.NoError(t, err)
	assert.Equal(t, *pool, decoded)
}

func TestDecodePool_WrongSize(t *testing.T) {
	_, err := DecodePool(make([]byte, PoolLayoutSize-1))
	assert.Error(t, err)

	_, err = DecodePool(make([]byte, PoolLayoutSize+1))
	assert.Error(t, err)
}

func TestDecodePool_InvalidFee(t *testing.T) {
	pool := &PoolLayout{
		Address:  solana.NewWallet().PublicKey(),
		TokenA:   program.USDC,
		TokenB:   program.USDT,
		FeeBps:   10000,
		ReserveA: 1000000,
		ReserveB: 2000000,
	}
	data := EncodePool(pool)
	_, err := DecodePool(data)
	assert.Equal(t, program.ErrInvalidPoolState, err)
}
