package tools

import (
	"encoding/json"
	"os"

	"github.com/egaotan/solana-wayfinder/config"
	"github.com/egaotan/solana-wayfinder/cpamm"
	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
)

// GenPoolsFixture writes a synthetic pools.json plus the matching
// markets.json so the server can run against config loaded pools instead of
// a chain scan. Every consecutive token pair gets one pool.
func GenPoolsFixture(tokens []solana.PublicKey, reserve uint64, feeBps uint16) ([]*cpamm.PoolLayout, error) {
	pools := make([]*cpamm.PoolLayout, 0, len(tokens))
	for i := 0; i+1 < len(tokens); i++ {
		key := solana.NewWallet().PublicKey()
		pools = append(pools, &cpamm.PoolLayout{
			Address:  key,
			TokenA:   tokens[i],
			TokenB:   tokens[i+1],
			FeeBps:   feeBps,
			ReserveA: reserve,
			ReserveB: reserve,
		})
	}
	{
		infoJson, _ := json.MarshalIndent(pools, "", "    ")
		if err := os.WriteFile(config.PoolsFile, infoJson, 0644); err != nil {
			return nil, err
		}
	}
	markets := map[solana.PublicKey]map[solana.PublicKey]bool{
		program.CpAmm: make(map[solana.PublicKey]bool),
	}
	for _, pool := range pools {
		markets[program.CpAmm][pool.Address] = true
	}
	{
		infoJson, _ := json.MarshalIndent(markets, "", "    ")
		if err := os.WriteFile(config.MarketsFile, infoJson, 0644); err != nil {
			return nil, err
		}
	}
	return pools, nil
}
