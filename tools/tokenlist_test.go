package tools

import (
	"encoding/json"
	"fmt"
	"github.com/egaotan/solana-wayfinder/config"
	"github.com/gagliardetto/solana-go"
	"io"
	"net/http"
	"os"
	"testing"
)

type TokenInfo struct {
	Symbol  string
	Name    string
	Decimal uint64
}

func TestFetchTokenList(t *testing.T) {
	if os.Getenv("WAYFINDER_ONLINE") == "" {
		t.Skip("WAYFINDER_ONLINE is not set")
	}
	req, err := http.NewRequest("GET", "https://cdn.jsdelivr.net/gh/solana-labs/token-list@main/src/tokens/solana.tokenlist.json", nil)
	if err != nil {
		panic(err)
	}
	req.Header.Set("Accepts", "application/json")
	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		panic(fmt.Errorf("response status code: %d", resp.StatusCode))
	}
	respBody, _ := io.ReadAll(resp.Body)
	var tokenList TokenList
	err = json.Unmarshal(respBody, &tokenList)
	if err != nil {
		panic(err)
	}
	infoJson, _ := json.MarshalIndent(tokenList, "", "    ")
	name := fmt.Sprintf("./tools/solana.tokenlist.json")
	err = os.WriteFile(name, infoJson, 0644)
	if err != nil {
		panic(err)
	}
}

func TestInitToken(t *testing.T) {
	if _, err := os.Stat(config.UsableTokensFile); err != nil {
		t.Skip("usable tokens cache is not found, run the server first")
	}
	FilePath = "./tools/solana.tokenlist.json"
	tokenList, err := InitTokenList()
	if err != nil {
		panic(err)
	}
	infoJson, err := os.ReadFile(config.UsableTokensFile)
	if err != nil {
		panic(err)
	}
	usableTokens := make(map[solana.PublicKey]bool)
	err = json.Unmarshal(infoJson, &usableTokens)
	if err != nil {
		panic(err)
	}
	tokens := make(map[string]*TokenInfo)
	for token := range usableTokens {
		item := tokenList.GetToken(token.String())
		if item.Address == "" {
			item.Name = token.String()
			item.Symbol = token.String()
		}
		tokens[token.String()] = &TokenInfo{
			Symbol:  item.Symbol,
			Name:    item.Name,
			Decimal: decimalMultiplier(item.Decimals),
		}
	}
	{
		infoData, _ := json.MarshalIndent(tokens, "", "    ")
		err = os.WriteFile(config.TokensFile, infoData, 0644)
		if err != nil {
			panic(err)
		}
	}
}

func decimalMultiplier(a int) uint64 {
	item := uint64(1)
	for i := 0; i < a; i++ {
		item *= 10
	}
	return item
}
