package tools

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"github.com/egaotan/solana-wayfinder/config"
	"github.com/egaotan/solana-wayfinder/program"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"golang.org/x/net/context"
)

var (
	TokenLayoutSize = 165
	MintLayoutSize  = 82
)

type TokenLayout struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       [4]byte
	Delegate             solana.PublicKey
	State                uint8
	IsNativeOption       [4]byte
	IsNative             uint64
	DelegatedAmount      uint64
	CloseAuthorityOption [4]byte
	CloseAuthority       solana.PublicKey
}

type MintLayout struct {
	MintAuthorityOption   [4]byte
	MintAuthority         solana.PublicKey
	Supply                uint64
	Decimals              byte
	IsInitialized         uint8
	FreezeAuthorityOption [4]byte
	FreezeAuthority       solana.PublicKey
}

func decodeAccount(account *rpc.Account) (*TokenLayout, error) {
	if account.Owner != program.Token {
		return nil, fmt.Errorf("account is not spl token program account")
	}
	tokenData := account.Data.GetBinary()
	if len(tokenData) != TokenLayoutSize {
		return nil, fmt.Errorf("account data size is not valid")
	}
	token := TokenLayout{}
	buf := bytes.NewReader(tokenData)
	err := binary.Read(buf, binary.LittleEndian, &token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// BuildUserAccounts scans the owner's spl token accounts and writes the
// mint -> user account and user account -> owner maps the executor loads
// from the workspace.
func BuildUserAccounts(rpcUrl string, owner solana.PublicKey) error {
	ctx := context.Background()
	client := rpc.New(rpcUrl)
	result, err := client.GetProgramAccountsWithOpts(ctx, program.Token,
		&rpc.GetProgramAccountsOpts{
			Encoding: solana.EncodingBase64,
			Filters: []rpc.RPCFilter{
				{DataSize: uint64(TokenLayoutSize)},
				{Memcmp: &rpc.RPCFilterMemcmp{
					Offset: 32,
					Bytes:  owner.Bytes(),
				}},
			},
		})
	if err != nil {
		return err
	}
	tokensUser := make(map[solana.PublicKey]solana.PublicKey)
	usersOwner := make(map[solana.PublicKey]solana.PublicKey)
	for _, item := range result {
		token, err := decodeAccount(item.Account)
		if err != nil {
			fmt.Printf("account %s: %s\n", item.Pubkey.String(), err)
			continue
		}
		tokensUser[token.Mint] = item.Pubkey
		usersOwner[item.Pubkey] = token.Owner
	}
	{
		infoJson, _ := json.MarshalIndent(tokensUser, "", "    ")
		if err := os.WriteFile(config.UsersFile, infoJson, 0644); err != nil {
			return err
		}
	}
	{
		infoJson, _ := json.MarshalIndent(usersOwner, "", "    ")
		if err := os.WriteFile(config.UsersOwnerFile, infoJson, 0644); err != nil {
			return err
		}
	}
	return nil
}
