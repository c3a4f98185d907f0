package wayfinder

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"

	"github.com/egaotan/solana-wayfinder/backend"
	"github.com/egaotan/solana-wayfinder/cpamm"
	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
)

type Program struct {
	backend *backend.Backend
	log     *log.Logger
	ctx     context.Context
	id      solana.PublicKey
}

func NewProgram(id solana.PublicKey, context context.Context, be *backend.Backend) *Program {
	p := &Program{
		ctx:     context,
		backend: be,
		log:     log.Default(),
		id:      id,
	}
	return p
}

func (p *Program) Name() string {
	return "wayfinder"
}

func (p *Program) Id() solana.PublicKey {
	return p.id
}

func (p *Program) Start() error {
	p.log.Printf("start wayfinder program: %s......", p.Id())
	return nil
}

func (p *Program) Stop() error {
	p.log.Printf("stop wayfinder program......")
	return nil
}

// RegistryPools fetches the registry account and unpacks its entries, keyed
// by each pool account address.
func (p *Program) RegistryPools(registryKey solana.PublicKey) ([]*cpamm.KeyedPool, error) {
	account, err := p.backend.Account(registryKey)
	if err != nil {
		return nil, err
	}
	if account.Account == nil {
		return nil, fmt.Errorf("no registry account of the key - %s", registryKey)
	}
	if account.Account.Owner != p.id {
		return nil, fmt.Errorf("registry account %s is not owned by wayfinder", registryKey)
	}
	registry, err := DecodeRegistry(account.Account.Data.GetBinary())
	if err != nil {
		return nil, err
	}
	if registry.Discriminator != RegistryDiscriminator {
		return nil, program.ErrInvalidPoolState
	}
	pools := make([]*cpamm.KeyedPool, 0, len(registry.Pools))
	for _, pool := range registry.Pools {
		pools = append(pools, &cpamm.KeyedPool{
			Key:        pool.Address,
			Height:     account.Height,
			PoolLayout: *pool,
		})
	}
	return pools, nil
}

// RouteState fetches and unpacks a route state account.
func (p *Program) RouteState(stateKey solana.PublicKey) (*KeyedRouteState, error) {
	account, err := p.backend.Account(stateKey)
	if err != nil {
		return nil, err
	}
	if account.Account == nil {
		return nil, fmt.Errorf("no route state account of the key - %s", stateKey)
	}
	if account.Account.Owner != p.id {
		return nil, fmt.Errorf("route state account %s is not owned by wayfinder", stateKey)
	}
	state, err := DecodeRouteState(account.Account.Data.GetBinary())
	if err != nil {
		return nil, err
	}
	keyedState := &KeyedRouteState{
		Key:              stateKey,
		Height:           account.Height,
		RouteStateLayout: *state,
	}
	return keyedState, nil
}

func (p *Program) InstructionInitializeRoute(
	stateKey solana.PublicKey, authority solana.PublicKey,
	tokenIn solana.PublicKey, tokenOut solana.PublicKey,
	amountIn uint64, minAmountOut uint64, maxHops uint8) (solana.Instruction, error) {
	data := make([]byte, 82)
	data[0] = 0
	copy(data[1:33], tokenIn.Bytes())
	copy(data[33:65], tokenOut.Bytes())
	binary.LittleEndian.PutUint64(data[65:73], amountIn)
	binary.LittleEndian.PutUint64(data[73:81], minAmountOut)
	data[81] = maxHops
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: stateKey, IsSigner: false, IsWritable: true},
			{PublicKey: authority, IsSigner: true, IsWritable: false},
			{PublicKey: program.System, IsSigner: false, IsWritable: false},
		},
		IsData:      data,
		IsProgramID: p.id,
	}
	return instruction, nil
}

func (p *Program) InstructionFindRoute(stateKey solana.PublicKey, pools []solana.PublicKey) (solana.Instruction, error) {
	data := make([]byte, 1)
	data[0] = 1
	accounts := make([]*solana.AccountMeta, 0, 1+len(pools))
	accounts = append(accounts, &solana.AccountMeta{PublicKey: stateKey, IsSigner: false, IsWritable: true})
	for _, pool := range pools {
		accounts = append(accounts, &solana.AccountMeta{PublicKey: pool, IsSigner: false, IsWritable: false})
	}
	instruction := &program.Instruction{
		IsAccounts:  accounts,
		IsData:      data,
		IsProgramID: p.id,
	}
	return instruction, nil
}

func (p *Program) InstructionExecuteRoute(
	stateKey solana.PublicKey, authority solana.PublicKey,
	userTokenIn solana.PublicKey, userTokenOut solana.PublicKey,
	pools []solana.PublicKey) (solana.Instruction, error) {
	data := make([]byte, 1)
	data[0] = 2
	accounts := make([]*solana.AccountMeta, 0, 4+len(pools))
	accounts = append(accounts, &solana.AccountMeta{PublicKey: stateKey, IsSigner: false, IsWritable: true})
	accounts = append(accounts, &solana.AccountMeta{PublicKey: authority, IsSigner: true, IsWritable: false})
	accounts = append(accounts, &solana.AccountMeta{PublicKey: userTokenIn, IsSigner: false, IsWritable: true})
	accounts = append(accounts, &solana.AccountMeta{PublicKey: userTokenOut, IsSigner: false, IsWritable: true})
	for _, pool := range pools {
		accounts = append(accounts, &solana.AccountMeta{PublicKey: pool, IsSigner: false, IsWritable: false})
	}
	instruction := &program.Instruction{
		IsAccounts:  accounts,
		IsData:      data,
		IsProgramID: p.id,
	}
	return instruction, nil
}

func (p *Program) InstructionRegisterPool(
	registryKey solana.PublicKey, authority solana.PublicKey, poolKey solana.PublicKey,
	tokenA solana.PublicKey, tokenB solana.PublicKey, feeBps uint16) (solana.Instruction, error) {
	if feeBps >= program.FeeDenominator {
		return nil, program.ErrInvalidPoolState
	}
	data := make([]byte, 67)
	data[0] = 3
	copy(data[1:33], tokenA.Bytes())
	copy(data[33:65], tokenB.Bytes())
	binary.LittleEndian.PutUint16(data[65:67], feeBps)
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: registryKey, IsSigner: false, IsWritable: true},
			{PublicKey: authority, IsSigner: true, IsWritable: false},
			{PublicKey: poolKey, IsSigner: false, IsWritable: false},
		},
		IsData:      data,
		IsProgramID: p.id,
	}
	return instruction, nil
}
