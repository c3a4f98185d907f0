package app

import (
	"fmt"
	"github.com/egaotan/solana-wayfinder/cpamm"
	"github.com/egaotan/solana-wayfinder/program"
	"github.com/egaotan/solana-wayfinder/router"
	"github.com/egaotan/solana-wayfinder/store"
	"github.com/egaotan/solana-wayfinder/wayfinder"
	"github.com/gagliardetto/solana-go"
	"time"
)

var (
	FindWaitTry      = 25
	FindWaitInterval = time.Millisecond * 400
)

// Execute drives the route life cycle on chain. It funds a fresh state
// account, initializes it and asks the contract to find the route in one
// transaction, then waits for the state to settle, replays the route against
// fresh pool reserves and only then commits the execute instruction.
func (opt *Optimizer) Execute(data *RouteData) error {
	stateWallet := solana.NewWallet()
	stateKey := stateWallet.PublicKey()
	opt.backend.ImportWallet(stateWallet.PrivateKey.String())
	data.state = stateKey
	opt.log.Printf("route state account: %s", stateKey.String())
	//
	poolKeys := make([]solana.PublicKey, 0, len(data.steps))
	for _, step := range data.steps {
		poolKeys = append(poolKeys, step.model.Id())
	}
	ins := make([]solana.Instruction, 0, 3)
	in1, err := opt.system.InstructionCreateAccount(opt.config.User, stateKey, uint64(wayfinder.RouteStateSize), opt.wayfinder.Id())
	if err != nil {
		return err
	}
	ins = append(ins, in1)
	in2, err := opt.wayfinder.InstructionInitializeRoute(stateKey, opt.config.User,
		data.tokenIn, data.tokenOut, data.amountIn, data.minAmountOut, uint8(opt.config.MaxHops))
	if err != nil {
		return err
	}
	ins = append(ins, in2)
	in3, err := opt.wayfinder.InstructionFindRoute(stateKey, poolKeys)
	if err != nil {
		return err
	}
	ins = append(ins, in3)
	//
	defer func() {
		committedRoute := &store.CommittedRoute{
			Id:                  data.id,
			StateAccount:        data.state.String(),
			AmountIn:            data.amountIn,
			MinAmountOut:        data.minAmountOut,
			CommittedRouteSteps: make([]*store.CommittedRouteStep, 0, len(data.steps)),
		}
		for _, step := range data.steps {
			committedRouteStep := &store.CommittedRouteStep{
				Program:          step.model.Program().String(),
				Pool:             step.model.Id().String(),
				TokenIn:          step.tokenIn.String(),
				AmountIn:         step.amountIn,
				TokenOut:         step.tokenOut.String(),
				AmountOut:        step.amountOut,
				CommittedRouteId: data.id,
			}
			committedRoute.CommittedRouteSteps = append(committedRoute.CommittedRouteSteps, committedRouteStep)
		}
		opt.store.StoreCommittedRoute(committedRoute)
		opt.notify.Commit(data)
	}()
	blockHashIndex := opt.nodeId % 3
	opt.backend.Commit(blockHashIndex, data.id, ins)
	opt.latestCommitTime = time.Now().Unix()
	//
	state, err := opt.waitRouteFound(stateKey)
	if err != nil {
		return err
	}
	routeKeys := state.RouteKeys()
	if len(routeKeys) != len(poolKeys) {
		opt.log.Printf("the route on chain has %d hops, local has %d", len(routeKeys), len(poolKeys))
	} else {
		for i := range routeKeys {
			if routeKeys[i] != poolKeys[i] {
				opt.log.Printf("the route on chain differs at hop %d, %s", i, routeKeys[i].String())
				break
			}
		}
	}
	//
	steps, err := opt.replayOnChain(routeKeys, data)
	if err != nil {
		return err
	}
	final := steps[len(steps)-1].AmountOut
	if final < data.minAmountOut {
		opt.log.Printf("replay amount out is %d, less than %d, discard......", final, data.minAmountOut)
		return program.ErrSlippageExceeded
	}
	userTokenIn := opt.env.TokenUser(data.tokenIn)
	userTokenOut := opt.env.TokenUser(data.tokenOut)
	if userTokenIn.IsZero() || userTokenOut.IsZero() {
		return fmt.Errorf("no user account of the token - %s, %s", data.tokenIn.String(), data.tokenOut.String())
	}
	in4, err := opt.wayfinder.InstructionExecuteRoute(stateKey, opt.config.User, userTokenIn, userTokenOut, routeKeys)
	if err != nil {
		return err
	}
	opt.backend.Commit(blockHashIndex, data.id, []solana.Instruction{in4})
	opt.latestCommitTime = time.Now().Unix()
	return nil
}

func (opt *Optimizer) waitRouteFound(stateKey solana.PublicKey) (*wayfinder.KeyedRouteState, error) {
	counter := 0
	for counter < FindWaitTry {
		time.Sleep(FindWaitInterval)
		counter++
		if !opt.backend.HasAccount(stateKey) {
			continue
		}
		state, err := opt.wayfinder.RouteState(stateKey)
		if err != nil {
			opt.log.Printf("route state err: %v", err)
			continue
		}
		if state.Status == wayfinder.StatusRouteFound {
			return state, nil
		}
		opt.log.Printf("route state status: %d, wait......", state.Status)
	}
	return nil, fmt.Errorf("no route found on chain of the state - %s", stateKey.String())
}

// replayOnChain refetches the pools of the found route and replays the swap
// chain on their current reserves.
func (opt *Optimizer) replayOnChain(routeKeys []solana.PublicKey, data *RouteData) ([]*program.SwapResult, error) {
	accounts, err := opt.backend.Accounts(routeKeys)
	if err != nil {
		return nil, err
	}
	models := make([]program.Model, 0, len(routeKeys))
	for i, account := range accounts {
		if account == nil || account.Account == nil {
			return nil, fmt.Errorf("no pool account of the key - %s", routeKeys[i].String())
		}
		pool, err := cpamm.DecodePool(account.Account.Data.GetBinary())
		if err != nil {
			return nil, err
		}
		keyedPool := &cpamm.KeyedPool{
			Key:        routeKeys[i],
			Height:     account.Height,
			PoolLayout: pool,
		}
		models = append(models, &cpamm.Model{
			ProgramId: account.Account.Owner,
			Pool:      keyedPool,
			States:    make(map[string]interface{}),
		})
	}
	return router.ReplaySteps(models, data.tokenIn, data.amountIn)
}
