package config

import (
	"github.com/gagliardetto/solana-go"
)

const (
	MarketFromChain = iota
	MarketFromConfig
	MarketFromRegistry
)

var (
	CachePath          = "./cache/"
	ConfigPath         = "./config/"
	TokensFile         = ConfigPath + "tokens.json"
	UsersFile          = ConfigPath + "tokens_user.json"
	UsersOwnerFile     = ConfigPath + "users_owner.json"
	MarketsFile        = ConfigPath + "markets.json"
	PoolsFile          = ConfigPath + "pools.json"
	ConfigFile         = ConfigPath + "config.json"
	UsableTokensFile   = CachePath + "usable_tokens.json"
	UsablePoolAccounts = CachePath + "usable_pool_accounts.json"
	LogPath            = "./logs/"
	BackendLog         = "backend"
	ExecutorLog        = "executor"
	NetworkLog         = "network"
	RouterLog          = "router"
	SentTxHash         = "sent_tx"
)

type Node struct {
	Rpc    string `json:"rpc"`
	Ws     string `json:"ws"`
	Usable bool   `json:"usable"`
}

type Watch struct {
	TokenIn      solana.PublicKey `json:"token_in"`
	TokenOut     solana.PublicKey `json:"token_out"`
	AmountIn     uint64           `json:"amount_in"`
	MinAmountOut uint64           `json:"min_amount_out"`
	Execute      bool             `json:"execute"`
}

type Config struct {
	Nodes             []*Node            `json:"nodes"`
	TransactionNodes  []*Node            `json:"transaction_nodes"`
	Transaction       bool               `json:"transaction"`
	NodeId            int                `json:"node_id"`
	Programs          []solana.PublicKey `json:"programs"`
	User              solana.PublicKey   `json:"user"`
	Key               string             `json:"key"`
	WayfinderContract solana.PublicKey   `json:"wayfinder_contract"`
	RegistryAccount   solana.PublicKey   `json:"registry_account"`
	Calculators       []string           `json:"calculators"`
	Watches           []*Watch           `json:"watches"`
	MaxHops           int                `json:"max_hops"`
	MaxExpansions     int                `json:"max_expansions"`
	Which             int                `json:"which"`
	DumpState         bool               `json:"dump_state"`
	NetStatus         bool               `json:"net_status"`
	WorkSpace         string             `json:"workspace"`
	DingUrl           string             `json:"ding-url"`
	DBUrl             string             `json:"db_url"`
	DBScheme          string             `json:"db_scheme"`
	DBUser            string             `json:"db_user"`
	DBPasswd          string             `json:"db_passwd"`
	Listen            string             `json:"listen"`
}
