package env

import (
	"encoding/json"
	"github.com/egaotan/solana-wayfinder/config"
	"github.com/gagliardetto/solana-go"
	"os"
)

func (e *Env) loadTokensUser() {
	infoJson, err := os.ReadFile(config.UsersFile)
	if err != nil {
		panic(err)
	}
	err = json.Unmarshal(infoJson, &e.tokensUser)
	if err != nil {
		panic(err)
	}
}

func (e *Env) loadUsersOwner() {
	infoJson, err := os.ReadFile(config.UsersOwnerFile)
	if err != nil {
		panic(err)
	}
	err = json.Unmarshal(infoJson, &e.usersOwner)
	if err != nil {
		panic(err)
	}
}

func (e *Env) TokenUser(token solana.PublicKey) solana.PublicKey {
	item, ok := e.tokensUser[token]
	if !ok {
		return solana.PublicKey{}
	}
	return item
}

func (e *Env) UsersOwner(user solana.PublicKey) solana.PublicKey {
	item, ok := e.usersOwner[user]
	if !ok {
		return solana.PublicKey{}
	}
	return item
}
