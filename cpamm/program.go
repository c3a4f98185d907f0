package cpamm

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/egaotan/solana-wayfinder/backend"
	"github.com/egaotan/solana-wayfinder/config"
	"github.com/egaotan/solana-wayfinder/env"
	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
)

type Program struct {
	backend *backend.Backend
	env     *env.Env
	which   int
	log     *log.Logger
	cb      program.Callback
	ctx     context.Context
	id      solana.PublicKey
	pools   map[solana.PublicKey]*KeyedPool
	models  map[solana.PublicKey]*Model
}

func NewProgram(id solana.PublicKey, context context.Context, which int, env *env.Env, backend *backend.Backend, cb program.Callback) *Program {
	p := &Program{
		ctx:     context,
		backend: backend,
		env:     env,
		which:   which,
		log:     log.Default(),
		cb:      cb,
		id:      id,
		pools:   make(map[solana.PublicKey]*KeyedPool),
		models:  make(map[solana.PublicKey]*Model),
	}
	return p
}

func (p *Program) Name() string {
	return "cpamm"
}

func (p *Program) Id() solana.PublicKey {
	return p.id
}

func (p *Program) Type() string {
	return program.AMM
}

func (p *Program) save2Cache() {
	infoJson, _ := json.MarshalIndent(p.models, "", "    ")
	name := fmt.Sprintf("%s%s_%s.json", config.CachePath, p.Name(), p.Id())
	err := os.WriteFile(name, infoJson, 0644)
	if err != nil {
		panic(err)
	}
}

func (p *Program) Start() error {
	p.log.Printf("start %s, program: %s, type: %s", p.Name(), p.Id(), p.Type())
	accounts, err := p.programAccounts()
	if err != nil {
		return err
	}
	pools, err := p.buildAccounts(accounts)
	if err != nil {
		return err
	}
	models, err := p.buildModels(pools)
	if err != nil {
		return err
	}
	for _, model := range models {
		p.callback(model)
	}
	return nil
}

func (p *Program) Stop() error {
	p.log.Printf("stop %s, program: %s, type: %s", p.Name(), p.Id(), p.Type())
	p.save2Cache()
	return nil
}

func (p *Program) Flash() error {
	p.log.Printf("flash %s, program: %s, type: %s", p.Name(), p.Id(), p.Type())
	p.subscribeUpdate()
	return nil
}

func (p *Program) Markets() []program.Model {
	models := make([]program.Model, 0)
	for _, model := range p.models {
		models = append(models, model)
	}
	return models
}

func (p *Program) GetMarket(key solana.PublicKey) program.Model {
	model, ok := p.models[key]
	if !ok {
		return nil
	}
	return model
}

func (p *Program) programAccounts() ([]*backend.Account, error) {
	if p.which == config.MarketFromChain {
		return p.backend.ProgramAccounts(p.id, []uint64{uint64(PoolLayoutSize)})
	}
	return p.backend.Accounts(p.env.Markets(p.id))
}

func (p *Program) callback(model *Model) {
	if p.cb != nil {
		if err := p.cb.OnModelInit(model); err != nil {
			p.log.Printf("program %s call back err: %v", p.Name(), err)
		}
	}
}

func (p *Program) upsertPool(pubkey solana.PublicKey, height uint64, pool PoolLayout) *KeyedPool {
	keyedPool, ok := p.pools[pubkey]
	if !ok {
		keyedPool = &KeyedPool{
			Key:        pubkey,
			Height:     height,
			PoolLayout: pool,
		}
		p.pools[pubkey] = keyedPool
	} else {
		keyedPool.PoolLayout = pool
		keyedPool.Height = height
	}
	return keyedPool
}

func (p *Program) upsertModel(pool *KeyedPool) *Model {
	model, ok := p.models[pool.Key]
	if !ok {
		model = &Model{
			Pool:      pool,
			ProgramId: p.id,
			States:    make(map[string]interface{}),
		}
		p.models[pool.Key] = model
	} else {
		model.Pool = pool
	}
	return model
}

func (p *Program) parseAccount(account *backend.Account) (PoolLayout, error) {
	pool := PoolLayout{}
	if account.Account.Owner != p.id {
		return pool, fmt.Errorf("account(%s) is not cpamm program account, expected: %s, actual: %s", account.PubKey, p.id, account.Account.Owner)
	}
	accountData := account.Account.Data.GetBinary()
	pool, err := DecodePool(accountData)
	if err != nil {
		return pool, fmt.Errorf("cpamm account(%s) data is not valid, err: %s", account.PubKey, err)
	}
	if pool.Address != account.PubKey {
		return pool, fmt.Errorf("cpamm account(%s) address field is not valid, actual: %s", account.PubKey, pool.Address)
	}
	return pool, nil
}

func (p *Program) buildAccounts(accounts []*backend.Account) ([]*KeyedPool, error) {
	pools := make([]*KeyedPool, 0)
	for i := 0; i < len(accounts); i++ {
		account := accounts[i]
		pool, err := p.parseAccount(account)
		if err != nil {
			p.log.Printf("parse account err: %s", err.Error())
			continue
		}
		keyedPool := p.upsertPool(account.PubKey, account.Height, pool)
		pools = append(pools, keyedPool)
	}
	return pools, nil
}

func (p *Program) buildModels(pools []*KeyedPool) ([]*Model, error) {
	models := make([]*Model, 0)
	for _, pool := range pools {
		model := p.upsertModel(pool)
		models = append(models, model)
	}
	return models, nil
}

// LoadRegistered feeds pools decoded from the wayfinder registry account.
func (p *Program) LoadRegistered(height uint64, pools []PoolLayout) {
	for _, pool := range pools {
		keyedPool := p.upsertPool(pool.Address, height, pool)
		model := p.upsertModel(keyedPool)
		model.SetState(program.StateRegistered, true)
		p.callback(model)
	}
}

func (p *Program) subscribeUpdate() {
	for _, model := range p.models {
		used := model.HasState(program.StateUsed)
		if !used {
			continue
		}
		p.backend.SubscribeAccount(model.Pool.Key, p)
	}
}

func (p *Program) OnAccountUpdate(account *backend.Account) error {
	pool, err := p.parseAccount(account)
	if err != nil {
		p.log.Printf("parse account err: %s", err.Error())
		return err
	}
	p.upsertPool(account.PubKey, account.Height, pool)
	if p.cb != nil {
		if err := p.cb.OnStateUpdate(account.Height); err != nil {
			p.log.Printf("program %s call back err: %v", p.Name(), err)
		}
	}
	return nil
}

func (p *Program) RetrieveState(market solana.PublicKey) (string, error) {
	var model *Model
	if item, ok := p.models[market]; !ok {
		return "", fmt.Errorf("no model of the key - %s", market)
	} else {
		model = item
	}
	tokenA := p.env.Token(model.Pool.TokenA)
	tokenB := p.env.Token(model.Pool.TokenB)
	amountTokenA := tokenA.AmountUi(model.Pool.ReserveA)
	amountTokenB := tokenB.AmountUi(model.Pool.ReserveB)
	price := "-"
	if !amountTokenA.IsZero() {
		price = amountTokenB.Div(amountTokenA).StringFixed(5)
	}
	state1 := fmt.Sprintf("    %s/%s: %s\n", tokenA.Symbol, tokenB.Symbol, price)
	state2 := fmt.Sprintf("    token pool: (%s %s)(%s %s), fee: %d",
		tokenA.Symbol, amountTokenA.StringFixed(2), tokenB.Symbol, amountTokenB.StringFixed(2), model.Pool.FeeBps)
	return state1 + state2, nil
}

func (p *Program) InstructionSwap(market solana.PublicKey, tokenIn solana.PublicKey, amountIn uint64, minAmountOut uint64) (solana.Instruction, error) {
	var model *Model
	if item, ok := p.models[market]; !ok {
		return nil, fmt.Errorf("no model of this market - %s", market)
	} else {
		model = item
	}
	mintSrc := tokenIn
	_, _, mintDst, err := model.reserves(tokenIn)
	if err != nil {
		return nil, err
	}
	// build accounts
	authority, _, err := solana.FindProgramAddress([][]byte{market.Bytes()}, p.id)
	if err != nil {
		return nil, err
	}
	userSrc := p.env.TokenUser(mintSrc)
	if userSrc.IsZero() {
		return nil, fmt.Errorf("no user account for minter - %s", mintSrc)
	}
	userDst := p.env.TokenUser(mintDst)
	if userDst.IsZero() {
		return nil, fmt.Errorf("no user account for minter - %s", mintDst)
	}
	userSrcOwner := p.env.UsersOwner(userSrc)
	if userSrcOwner.IsZero() {
		return nil, fmt.Errorf("no owner account for user - %s", userSrc)
	}
	// build instruction
	data := make([]byte, 17)
	data[0] = 1
	binary.LittleEndian.PutUint64(data[1:], amountIn)
	binary.LittleEndian.PutUint64(data[9:], minAmountOut)
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: market, IsSigner: false, IsWritable: true},
			{PublicKey: authority, IsSigner: false, IsWritable: false},
			{PublicKey: userSrcOwner, IsSigner: true, IsWritable: false},
			{PublicKey: userSrc, IsSigner: false, IsWritable: true},
			{PublicKey: userDst, IsSigner: false, IsWritable: true},
			{PublicKey: program.Token, IsSigner: false, IsWritable: false},
		},
		IsData:      data,
		IsProgramID: p.id,
	}
	return instruction, nil
}
