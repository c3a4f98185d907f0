package wayfinder

import (
	"encoding/binary"
	"testing"

	"github.com/egaotan/solana-wayfinder/cpamm"
	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouteState(hops uint8) *RouteStateLayout {
	state := &RouteStateLayout{
		Discriminator: RouteStateDiscriminator,
		InputMint:     program.USDC,
		OutputMint:    program.SOL,
		AmountIn:      1000000,
		MinAmountOut:  990000,
		Hops:          hops,
		Status:        StatusRouteFound,
		Authority:     solana.NewWallet().PublicKey(),
	}
	for i := 0; i < int(hops); i++ {
		state.Route[i] = solana.NewWallet().PublicKey()
	}
	return state
}

func TestRouteState_Codec(t *testing.T) {
	state := testRouteState(2)
	data := EncodeRouteState(state)
	require.Equal(t, RouteStateSize, len(data))

	assert.Equal(t, uint8(RouteStateDiscriminator), data[0])
	assert.Equal(t, program.USDC.Bytes(), data[1:33])
	assert.Equal(t, program.SOL.Bytes(), data[33:65])
	assert.Equal(t, uint64(1000000), binary.LittleEndian.Uint64(data[65:73]))
	assert.Equal(t, uint64(990000), binary.LittleEndian.Uint64(data[73:81]))
	assert.Equal(t, uint8(2), data[81])
	assert.Equal(t, state.Route[0].Bytes(), data[82:114])
	assert.Equal(t, state.Route[1].Bytes(), data[114:146])
	// unused route slots stay zero padded
	assert.Equal(t, make([]byte, 32), data[146:178])
	assert.Equal(t, uint8(StatusRouteFound), data[242])
	assert.Equal(t, state.Authority.Bytes(), data[243:275])

	decoded, err := DecodeRouteState(data)
	require.NoError(t, err)
	assert.Equal(t, state, decoded)
}

func TestRouteState_RouteKeys(t *testing.T) {
	state := testRouteState(3)
	keys := state.RouteKeys()
	require.Equal(t, 3, len(keys))
	assert.Equal(t, state.Route[0], keys[0])
	assert.Equal(t, state.Route[2], keys[2])

	state = testRouteState(0)
	assert.Equal(t, 0, len(state.RouteKeys()))
}

func TestDecodeRouteState_Invalid(t *testing.T) {
	_, err := DecodeRouteState(make([]byte, RouteStateSize-1))
	assert.Equal(t, program.ErrInvalidRoute, err)

	state := testRouteState(1)
	data := EncodeRouteState(state)
	data[81] = program.MaxRouteHops + 1
	_, err = DecodeRouteState(data)
	assert.Equal(t, program.ErrInvalidRoute, err)

	data = EncodeRouteState(state)
	data[242] = StatusExecuted + 1
	_, err = DecodeRouteState(data)
	assert.Equal(t, program.ErrInvalidRoute, err)
}

func testRegistry(count int) *RegistryLayout {
	registry := &RegistryLayout{
		Discriminator: RegistryDiscriminator,
		Authority:     solana.NewWallet().PublicKey(),
		Pools:         make([]*cpamm.PoolLayout, 0, count),
	}
	for i := 0; i < count; i++ {
		registry.Pools = append(registry.Pools, &cpamm.PoolLayout{
			Address:  solana.NewWallet().PublicKey(),
			TokenA:   program.USDC,
			TokenB:   program.USDT,
			FeeBps:   30,
			ReserveA: 1000000,
			ReserveB: 2000000,
		})
	}
	return registry
}

func TestRegistry_Codec(t *testing.T) {
	registry := testRegistry(3)
	data := EncodeRegistry(registry)
	require.Equal(t, RegistryHeaderSize+3*cpamm.PoolLayoutSize, len(data))
	assert.Equal(t, uint8(RegistryDiscriminator), data[0])
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(data[33:37]))

	decoded, err := DecodeRegistry(data)
	require.NoError(t, err)
	assert.Equal(t, registry, decoded)
}

func TestDecodeRegistry_Invalid(t *testing.T) {
	_, err := DecodeRegistry(make([]byte, RegistryHeaderSize-1))
	assert.Equal(t, program.ErrInvalidPoolState, err)

	// count larger than the payload
	registry := testRegistry(2)
	data := EncodeRegistry(registry)
	binary.LittleEndian.PutUint32(data[33:37], 3)
	_, err = DecodeRegistry(data)
	assert.Equal(t, program.ErrInvalidPoolState, err)

	// entries go through the shared pool parser, bad fees are rejected
	registry.Pools[1].FeeBps = 10000
	data = EncodeRegistry(registry)
	_, err = DecodeRegistry(data)
	assert.Equal(t, program.ErrInvalidPoolState, err)
}
