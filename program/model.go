package program

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

var (
	StateUsed       = "used"
	StateRegistered = "registered"
)

type SwapResult struct {
	TokenIn       solana.PublicKey
	AmountIn      uint64
	SlotIn        uint64
	TokenOut      solana.PublicKey
	AmountOut     uint64
	SlotOut       uint64
	FeeAmount     uint64
	NewReserveIn  uint64
	NewReserveOut uint64
}

type Model interface {
	Program() solana.PublicKey
	Id() solana.PublicKey
	Type() string
	TokenPair() []solana.PublicKey
	CurrentSlot() uint64
	SetState(key string, value interface{}) error
	HasState(key string) bool
	State(key string) interface{}
	Swap(token solana.PublicKey, amount uint64) (*SwapResult, error)
	SpotPrice(token solana.PublicKey) (decimal.Decimal, error)
	Clone() Model
}
