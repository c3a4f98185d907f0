package program

import "github.com/gagliardetto/solana-go"

var (
	Wayfinder = solana.MustPublicKeyFromBase58("HhUVfHYvGby6k7zHrAcmA52YQLB7sWD41wkcb1WyUw8Z")
	CpAmm     = solana.MustPublicKeyFromBase58("SwaPpA9LAaLfeLi3a68M4DjnLqgtticKg6CnyNwgAC8")
	Registry  = solana.MustPublicKeyFromBase58("7H4ShpibmzrKS8yPJX9wi1ZyrRYzw5tLym7RjWvAxcHA")
	Token     = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	System    = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")
	SysClock  = solana.MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111")
	SysRent   = solana.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")
)

var (
	USDT = solana.MustPublicKeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB")
	USDC = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	SOL  = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
)

const (
	AMM = "AMM"
)

const (
	MaxRouteHops   = 5
	FeeDenominator = 10000
)

type Callback interface {
	OnModelInit(model Model) error
	OnStateUpdate(slot uint64) error
}

type Program interface {
	Start() error
	Stop() error
	Flash() error
	Name() string
	Id() solana.PublicKey
	Type() string
	GetMarket(key solana.PublicKey) Model
	Markets() []Model
	RetrieveState(market solana.PublicKey) (string, error)
}
