package program

import "errors"

// mirrors the wayfinder on-chain error codes, recoverable values only
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrAssetNotInPool     = errors.New("token is not in this pool")
	ErrZeroLiquidity      = errors.New("insufficient liquidity")
	ErrRouteNotFound      = errors.New("no valid route found")
	ErrOverflow           = errors.New("calculation overflow")
	ErrInvalidPoolState   = errors.New("invalid pool state")
	ErrInvalidRoute       = errors.New("invalid route state")
	ErrSlippageExceeded   = errors.New("slippage exceeded")
	ErrInvalidInstruction = errors.New("invalid instruction")
)
