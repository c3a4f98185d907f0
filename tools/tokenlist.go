package tools

import (
	"encoding/json"
	"fmt"
	"os"
)

type TokenList struct {
	Name      string               `json:"name"`
	Tags      map[string]*TokenTag `json:"tags"`
	TimeStamp string               `json:"timestamp"`
	Tokens    []*Token             `json:"tokens"`
}

type TokenTag struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Extensions struct {
	Website   string `json:"website"`
	Telegram  string `json:"telegram"`
	Twitter   string `json:"twitter"`
	Discord   string `json:"discord"`
	Instagram string `json:"instagram"`
}

type Token struct {
	ChainId    int         `json:"chainId"`
	Address    string      `json:"address"`
	Symbol     string      `json:"symbol"`
	Name       string      `json:"name"`
	Decimals   int         `json:"decimals"`
	LogoURI    string      `json:"logoURI"`
	Tags       []string    `json:"tags"`
	Extensions *Extensions `json:"extensions"`
}

func (tl *TokenList) GetToken(address string) *Token {
	for _, token := range tl.Tokens {
		if token.Address == address {
			return token
		}
	}
	return &Token{}
}

var (
	gTokenList *TokenList
	FilePath   string
)

func InitTokenList() (*TokenList, error) {
	data, err := os.ReadFile(FilePath)
	if err != nil {
		return nil, fmt.Errorf("read file %s err: %v", FilePath, err)
	}
	var tokenList TokenList
	err = json.Unmarshal(data, &tokenList)
	if err != nil {
		return nil, fmt.Errorf("unmarshal token list err: %v", err)
	}
	return &tokenList, nil
}

func Instance() *TokenList {
	if gTokenList == nil {
		gTokenList, _ = InitTokenList()
	}
	return gTokenList
}
