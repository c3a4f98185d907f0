package tools

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/egaotan/solana-wayfinder/config"
	"github.com/gagliardetto/solana-go"
)

func TestBuildUserAccounts(t *testing.T) {
	rpcUrl := os.Getenv("WAYFINDER_RPC")
	ownerStr := os.Getenv("WAYFINDER_OWNER")
	if rpcUrl == "" || ownerStr == "" {
		t.Skip("WAYFINDER_RPC or WAYFINDER_OWNER is not set")
	}
	owner, err := solana.PublicKeyFromBase58(ownerStr)
	if err != nil {
		panic(err)
	}
	err = BuildUserAccounts(rpcUrl, owner)
	if err != nil {
		panic(err)
	}
	infoJson, err := os.ReadFile(config.UsersFile)
	if err != nil {
		panic(err)
	}
	tokensUser := make(map[solana.PublicKey]solana.PublicKey)
	err = json.Unmarshal(infoJson, &tokensUser)
	if err != nil {
		panic(err)
	}
}

func TestGenPoolsFixture(t *testing.T) {
	dir, err := os.MkdirTemp("", "wayfinder")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)
	oldPools, oldMarkets := config.PoolsFile, config.MarketsFile
	config.PoolsFile = dir + "/pools.json"
	config.MarketsFile = dir + "/markets.json"
	defer func() {
		config.PoolsFile, config.MarketsFile = oldPools, oldMarkets
	}()

	tokens := []solana.PublicKey{
		solana.NewWallet().PublicKey(),
		solana.NewWallet().PublicKey(),
		solana.NewWallet().PublicKey(),
	}
	pools, err := GenPoolsFixture(tokens, 1000000, 30)
	if err != nil {
		panic(err)
	}
	if len(pools) != 2 {
		panic("unexpected pool count")
	}
	infoJson, err := os.ReadFile(config.PoolsFile)
	if err != nil {
		panic(err)
	}
	loaded := make([]*struct {
		Address solana.PublicKey
		TokenA  solana.PublicKey
		TokenB  solana.PublicKey
		FeeBps  uint16
	}, 0)
	err = json.Unmarshal(infoJson, &loaded)
	if err != nil {
		panic(err)
	}
	if len(loaded) != 2 || loaded[0].TokenA != tokens[0] {
		panic("pools fixture is not valid")
	}
}
