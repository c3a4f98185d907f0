package registerpool

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/egaotan/solana-wayfinder/backend"
	"github.com/egaotan/solana-wayfinder/config"
	"github.com/egaotan/solana-wayfinder/cpamm"
	"github.com/egaotan/solana-wayfinder/wayfinder"
	"github.com/gagliardetto/solana-go"
	"os"
	"time"
)

// RegisterPools reads the pool list of the workspace and registers every
// entry with the wayfinder registry account.
func RegisterPools(workSpace string) {
	ctx := context.Background()
	os.Chdir(workSpace)
	cfgJson, err := os.ReadFile(config.ConfigFile)
	if err != nil {
		panic(err)
	}
	var cfg config.Config
	err = json.Unmarshal(cfgJson, &cfg)
	if err != nil {
		panic(err)
	}
	poolsJson, err := os.ReadFile(config.PoolsFile)
	if err != nil {
		panic(err)
	}
	pools := make([]*cpamm.PoolLayout, 0)
	err = json.Unmarshal(poolsJson, &pools)
	if err != nil {
		panic(err)
	}

	backend := backend.NewBackend(ctx, cfg.Nodes, true, cfg.TransactionNodes)
	backend.ImportWallet(cfg.Key)
	backend.SetPlayer(cfg.User)
	wayfinderProgram := wayfinder.NewProgram(cfg.WayfinderContract, ctx, backend)
	backend.Start()
	wayfinderProgram.Start()
	backend.SubscribeSlot(nil)
	time.Sleep(time.Second * 5)

	for i, pool := range pools {
		in, err := wayfinderProgram.InstructionRegisterPool(cfg.RegistryAccount, cfg.User,
			pool.Address, pool.TokenA, pool.TokenB, pool.FeeBps)
		if err != nil {
			panic(err)
		}
		backend.Commit(0, uint64(time.Now().UnixNano()/1000), []solana.Instruction{in})
		fmt.Printf("register pool: %s (%d/%d)\n", pool.Address.String(), i+1, len(pools))
		time.Sleep(time.Second * 2)
	}
	time.Sleep(time.Second * 5)
	backend.Stop()
}
