package cpamm

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
)

var (
	PoolLayoutSize = 114
)

type PoolLayout struct {
	Address  solana.PublicKey
	TokenA   solana.PublicKey
	TokenB   solana.PublicKey
	FeeBps   uint16
	ReserveA uint64
	ReserveB uint64
}

type KeyedPool struct {
	Key    solana.PublicKey
	Height uint64
	PoolLayout
}

// DecodePool is shared with the registry codec, whose entries carry the
// same layout.
func DecodePool(data []byte) (PoolLayout, error) {
	pool := PoolLayout{}
	if len(data) != PoolLayoutSize {
		return pool, fmt.Errorf("pool data size is not valid, expected: %d, actual: %d", PoolLayoutSize, len(data))
	}
	buf := bytes.NewReader(data)
	err := binary.Read(buf, binary.LittleEndian, &pool)
	if err != nil {
		return pool, fmt.Errorf("pool data is not valid, err: %s", err)
	}
	if pool.FeeBps >= program.FeeDenominator {
		return pool, program.ErrInvalidPoolState
	}
	return pool, nil
}

func EncodePool(pool *PoolLayout) []byte {
	data := make([]byte, PoolLayoutSize)
	copy(data[0:], pool.Address.Bytes())
	copy(data[32:], pool.TokenA.Bytes())
	copy(data[64:], pool.TokenB.Bytes())
	binary.LittleEndian.PutUint16(data[96:], pool.FeeBps)
	binary.LittleEndian.PutUint64(data[98:], pool.ReserveA)
	binary.LittleEndian.PutUint64(data[106:], pool.ReserveB)
	return data
}
