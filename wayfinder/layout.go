package wayfinder

import (
	"encoding/binary"

	"github.com/egaotan/solana-wayfinder/cpamm"
	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
)

const (
	RouteStateSize     = 275
	RegistryHeaderSize = 37
)

const (
	RouteStateDiscriminator = 1
	RegistryDiscriminator   = 2
)

const (
	StatusUninitialized = 0
	StatusInitialized   = 1
	StatusRouteFound    = 2
	StatusExecuted      = 3
)

// RouteStateLayout is the route optimizer state account. The route slots are
// fixed at the hop cap and zero padded, Hops holds the live count.
type RouteStateLayout struct {
	Discriminator uint8
	InputMint     solana.PublicKey
	OutputMint    solana.PublicKey
	AmountIn      uint64
	MinAmountOut  uint64
	Hops          uint8
	Route         [program.MaxRouteHops]solana.PublicKey
	Status        uint8
	Authority     solana.PublicKey
}

type KeyedRouteState struct {
	Key    solana.PublicKey
	Height uint64
	RouteStateLayout
}

func DecodeRouteState(data []byte) (*RouteStateLayout, error) {
	if len(data) != RouteStateSize {
		return nil, program.ErrInvalidRoute
	}
	state := &RouteStateLayout{}
	state.Discriminator = data[0]
	copy(state.InputMint[:], data[1:33])
	copy(state.OutputMint[:], data[33:65])
	state.AmountIn = binary.LittleEndian.Uint64(data[65:73])
	state.MinAmountOut = binary.LittleEndian.Uint64(data[73:81])
	state.Hops = data[81]
	if int(state.Hops) > program.MaxRouteHops {
		return nil, program.ErrInvalidRoute
	}
	for i := 0; i < program.MaxRouteHops; i++ {
		copy(state.Route[i][:], data[82+i*32:82+(i+1)*32])
	}
	state.Status = data[242]
	if state.Status > StatusExecuted {
		return nil, program.ErrInvalidRoute
	}
	copy(state.Authority[:], data[243:275])
	return state, nil
}

func EncodeRouteState(state *RouteStateLayout) []byte {
	data := make([]byte, RouteStateSize)
	data[0] = state.Discriminator
	copy(data[1:33], state.InputMint[:])
	copy(data[33:65], state.OutputMint[:])
	binary.LittleEndian.PutUint64(data[65:73], state.AmountIn)
	binary.LittleEndian.PutUint64(data[73:81], state.MinAmountOut)
	data[81] = state.Hops
	for i := 0; i < program.MaxRouteHops; i++ {
		copy(data[82+i*32:82+(i+1)*32], state.Route[i][:])
	}
	data[242] = state.Status
	copy(data[243:275], state.Authority[:])
	return data
}

// RouteKeys returns the live pool addresses of the route.
func (state *RouteStateLayout) RouteKeys() []solana.PublicKey {
	keys := make([]solana.PublicKey, 0, state.Hops)
	for i := 0; i < int(state.Hops); i++ {
		keys = append(keys, state.Route[i])
	}
	return keys
}

// RegistryLayout is the pool registry account, a header followed by packed
// pool entries.
type RegistryLayout struct {
	Discriminator uint8
	Authority     solana.PublicKey
	Pools         []*cpamm.PoolLayout
}

type KeyedRegistry struct {
	Key    solana.PublicKey
	Height uint64
	RegistryLayout
}

func DecodeRegistry(data []byte) (*RegistryLayout, error) {
	if len(data) < RegistryHeaderSize {
		return nil, program.ErrInvalidPoolState
	}
	registry := &RegistryLayout{}
	registry.Discriminator = data[0]
	copy(registry.Authority[:], data[1:33])
	count := binary.LittleEndian.Uint32(data[33:37])
	if len(data) < RegistryHeaderSize+int(count)*cpamm.PoolLayoutSize {
		return nil, program.ErrInvalidPoolState
	}
	registry.Pools = make([]*cpamm.PoolLayout, 0, count)
	for i := 0; i < int(count); i++ {
		begin := RegistryHeaderSize + i*cpamm.PoolLayoutSize
		pool, err := cpamm.DecodePool(data[begin : begin+cpamm.PoolLayoutSize])
		if err != nil {
			return nil, err
		}
		registry.Pools = append(registry.Pools, &pool)
	}
	return registry, nil
}

func EncodeRegistry(registry *RegistryLayout) []byte {
	data := make([]byte, RegistryHeaderSize+len(registry.Pools)*cpamm.PoolLayoutSize)
	data[0] = registry.Discriminator
	copy(data[1:33], registry.Authority[:])
	binary.LittleEndian.PutUint32(data[33:37], uint32(len(registry.Pools)))
	for i, pool := range registry.Pools {
		begin := RegistryHeaderSize + i*cpamm.PoolLayoutSize
		copy(data[begin:begin+cpamm.PoolLayoutSize], cpamm.EncodePool(pool))
	}
	return data
}
