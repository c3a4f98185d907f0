package app

import (
	"github.com/egaotan/solana-wayfinder/cpamm"
	"github.com/egaotan/solana-wayfinder/env"
	"github.com/egaotan/solana-wayfinder/program"
	"github.com/egaotan/solana-wayfinder/router"
	"github.com/egaotan/solana-wayfinder/store"
	"github.com/gagliardetto/solana-go"
	"strconv"
	time2 "time"
)

type Token struct {
	Key    string `json:"key"`
	Symbol string `json:"symbol"`
}

type LocalRouteStep struct {
	Program      string `json:"program"`
	Pool         string `json:"pool"`
	TokenIn      *Token `json:"token_in"`
	AmountIn     string `json:"amount_in"`
	SlotIn       uint64 `json:"slot_in"`
	TokenOut     *Token `json:"token_out"`
	AmountOut    string `json:"amount_out"`
	SlotOut      uint64 `json:"slot_out"`
	Fee          string `json:"fee"`
	LocalRouteId uint64 `json:"local_route_id"`
}

type LocalRoute struct {
	Id              uint64            `json:"id"`
	Time            string            `json:"time"`
	TokenIn         *Token            `json:"token_in"`
	AmountIn        string            `json:"amount_in"`
	TokenOut        *Token            `json:"token_out"`
	AmountOut       string            `json:"amount_out"`
	Hops            int               `json:"hops"`
	Exact           bool              `json:"exact"`
	LocalRouteSteps []*LocalRouteStep `json:"local_route_steps"`
}

type CommittedRouteStep struct {
	Program          string `json:"program"`
	Pool             string `json:"pool"`
	TokenIn          *Token `json:"token_in"`
	TokenOut         *Token `json:"token_out"`
	CommittedRouteId uint64 `json:"committed_route_id"`
}

type CommittedRoute struct {
	Id                  uint64                `json:"id"`
	Time                string                `json:"time"`
	StateAccount        string                `json:"state_account"`
	AmountIn            string                `json:"amount_in"`
	MinAmountOut        string                `json:"min_amount_out"`
	CommittedRouteSteps []*CommittedRouteStep `json:"committed_route_steps"`
}

type ExecutedRoute struct {
	Id             uint64 `json:"id"`
	Time           string `json:"time"`
	SendTime       string `json:"send_time"`
	ResponseTime   string `json:"response_time"`
	FinishTime     string `json:"finish_time"`
	ExecutorId     int    `json:"executor_id"`
	ExecuteCounter int    `json:"execute_counter"`
	Signature      string `json:"signature"`
}

type QuoteStep struct {
	Pool      string `json:"pool"`
	TokenIn   *Token `json:"token_in"`
	AmountIn  string `json:"amount_in"`
	TokenOut  *Token `json:"token_out"`
	AmountOut string `json:"amount_out"`
	Fee       string `json:"fee"`
}

type QuoteInfo struct {
	TokenIn       *Token       `json:"token_in"`
	AmountIn      string       `json:"amount_in"`
	TokenOut      *Token       `json:"token_out"`
	AmountOut     string       `json:"amount_out"`
	TotalFee      string       `json:"total_fee"`
	SpotPrice     string       `json:"spot_price"`
	RealizedPrice string       `json:"realized_price"`
	PriceImpact   string       `json:"price_impact"`
	Hops          int          `json:"hops"`
	Exact         bool         `json:"exact"`
	QuoteSteps    []*QuoteStep `json:"quote_steps"`
}

type Pool struct {
	Key      string `json:"key"`
	Program  string `json:"program"`
	TokenA   *Token `json:"token_a"`
	TokenB   *Token `json:"token_b"`
	ReserveA string `json:"reserve_a"`
	ReserveB string `json:"reserve_b"`
	FeeBps   uint16 `json:"fee_bps"`
	Slot     uint64 `json:"slot"`
}

func buildToken(key solana.PublicKey, env *env.Env) *Token {
	token := env.Token(key)
	if token == nil {
		return &Token{Key: key.String(), Symbol: key.String()}
	}
	return &Token{Key: key.String(), Symbol: token.Symbol}
}

func amountUi(key solana.PublicKey, amount uint64, env *env.Env) string {
	token := env.Token(key)
	if token == nil {
		return strconv.FormatUint(amount, 10)
	}
	return token.AmountUi(amount).StringFixed(2)
}

func buildLocalRouteStep(step *store.LocalRouteStep, env *env.Env) *LocalRouteStep {
	tokenInKey := solana.MustPublicKeyFromBase58(step.TokenIn)
	tokenOutKey := solana.MustPublicKeyFromBase58(step.TokenOut)
	newStep := &LocalRouteStep{
		Program:      step.Program,
		Pool:         step.Pool,
		TokenIn:      buildToken(tokenInKey, env),
		AmountIn:     amountUi(tokenInKey, step.AmountIn, env),
		SlotIn:       step.SlotIn,
		TokenOut:     buildToken(tokenOutKey, env),
		AmountOut:    amountUi(tokenOutKey, step.AmountOut, env),
		SlotOut:      step.SlotOut,
		Fee:          amountUi(tokenInKey, step.FeeAmount, env),
		LocalRouteId: step.LocalRouteId,
	}
	return newStep
}

func buildLocalRouteSteps(steps []*store.LocalRouteStep, env *env.Env) []*LocalRouteStep {
	newSteps := make([]*LocalRouteStep, 0, len(steps))
	for _, step := range steps {
		newSteps = append(newSteps, buildLocalRouteStep(step, env))
	}
	return newSteps
}

func buildLocalRoute(route *store.LocalRoute, env *env.Env) *LocalRoute {
	tokenInKey := solana.MustPublicKeyFromBase58(route.TokenIn)
	tokenOutKey := solana.MustPublicKeyFromBase58(route.TokenOut)
	newRoute := &LocalRoute{
		Id:              route.Id,
		Time:            time2.Unix(int64(route.Id)/1000000, int64(route.Id)%1000000*1000).Format("2006-01-02 15:04:05.000000"),
		TokenIn:         buildToken(tokenInKey, env),
		AmountIn:        amountUi(tokenInKey, route.AmountIn, env),
		TokenOut:        buildToken(tokenOutKey, env),
		AmountOut:       amountUi(tokenOutKey, route.AmountOut, env),
		Hops:            route.Hops,
		Exact:           route.Exact,
		LocalRouteSteps: buildLocalRouteSteps(route.LocalRouteSteps, env),
	}
	return newRoute
}

func buildLocalRoutes(routes []*store.LocalRoute, env *env.Env) []*LocalRoute {
	newRoutes := make([]*LocalRoute, 0, len(routes))
	for _, route := range routes {
		newRoutes = append(newRoutes, buildLocalRoute(route, env))
	}
	return newRoutes
}

func buildCommittedRouteStep(step *store.CommittedRouteStep, env *env.Env) *CommittedRouteStep {
	tokenInKey := solana.MustPublicKeyFromBase58(step.TokenIn)
	tokenOutKey := solana.MustPublicKeyFromBase58(step.TokenOut)
	newStep := &CommittedRouteStep{
		Program:          step.Program,
		Pool:             step.Pool,
		TokenIn:          buildToken(tokenInKey, env),
		TokenOut:         buildToken(tokenOutKey, env),
		CommittedRouteId: step.CommittedRouteId,
	}
	return newStep
}

func buildCommittedRouteSteps(steps []*store.CommittedRouteStep, env *env.Env) []*CommittedRouteStep {
	newSteps := make([]*CommittedRouteStep, 0, len(steps))
	for _, step := range steps {
		newSteps = append(newSteps, buildCommittedRouteStep(step, env))
	}
	return newSteps
}

func buildCommittedRoute(route *store.CommittedRoute, env *env.Env) *CommittedRoute {
	amountIn := strconv.FormatUint(route.AmountIn, 10)
	minAmountOut := strconv.FormatUint(route.MinAmountOut, 10)
	if len(route.CommittedRouteSteps) > 0 {
		tokenInKey := solana.MustPublicKeyFromBase58(route.CommittedRouteSteps[0].TokenIn)
		amountIn = amountUi(tokenInKey, route.AmountIn, env)
		tokenOutKey := solana.MustPublicKeyFromBase58(route.CommittedRouteSteps[len(route.CommittedRouteSteps)-1].TokenOut)
		minAmountOut = amountUi(tokenOutKey, route.MinAmountOut, env)
	}
	newRoute := &CommittedRoute{
		Id:                  route.Id,
		Time:                time2.Unix(int64(route.Id)/1000000, int64(route.Id)%1000000*1000).Format("2006-01-02 15:04:05.000000"),
		StateAccount:        route.StateAccount,
		AmountIn:            amountIn,
		MinAmountOut:        minAmountOut,
		CommittedRouteSteps: buildCommittedRouteSteps(route.CommittedRouteSteps, env),
	}
	return newRoute
}

func buildCommittedRoutes(routes []*store.CommittedRoute, env *env.Env) []*CommittedRoute {
	newRoutes := make([]*CommittedRoute, 0, len(routes))
	for _, route := range routes {
		newRoutes = append(newRoutes, buildCommittedRoute(route, env))
	}
	return newRoutes
}

func buildExecutedRoute(route *store.ExecutedRoute) *ExecutedRoute {
	newRoute := &ExecutedRoute{
		Id:             route.Id,
		ExecutorId:     route.ExecuteId,
		Time:           time2.Unix(int64(route.Id)/1000000, int64(route.Id)%1000000*1000).Format("2006-01-02 15:04:05.000000"),
		SendTime:       time2.Unix(int64(route.SendTime)/1000000, int64(route.SendTime)%1000000*1000).Format("2006-01-02 15:04:05.000000"),
		ResponseTime:   time2.Unix(int64(route.ResponseTime)/1000000, int64(route.ResponseTime)%1000000*1000).Format("2006-01-02 15:04:05.000000"),
		FinishTime:     time2.Unix(int64(route.FinishTime)/1000000, int64(route.FinishTime)%1000000*1000).Format("2006-01-02 15:04:05.000000"),
		ExecuteCounter: route.ExecuteCounter,
		Signature:      route.Signature,
	}
	return newRoute
}

func buildExecutedRoutes(routes []*store.ExecutedRoute) []*ExecutedRoute {
	newRoutes := make([]*ExecutedRoute, 0, len(routes))
	for _, route := range routes {
		newRoutes = append(newRoutes, buildExecutedRoute(route))
	}
	return newRoutes
}

func buildQuote(quote *router.Quote, sr *router.SearchResult, env *env.Env) *QuoteInfo {
	newQuote := &QuoteInfo{
		TokenIn:       buildToken(quote.TokenIn, env),
		AmountIn:      amountUi(quote.TokenIn, quote.AmountIn, env),
		TokenOut:      buildToken(quote.TokenOut, env),
		AmountOut:     amountUi(quote.TokenOut, quote.AmountOut, env),
		TotalFee:      amountUi(quote.TokenIn, quote.TotalFee, env),
		SpotPrice:     quote.SpotPrice.StringFixed(5),
		RealizedPrice: quote.RealizedPrice.StringFixed(5),
		PriceImpact:   quote.PriceImpact.StringFixed(4),
		Hops:          len(quote.Steps),
		Exact:         sr.Exact,
		QuoteSteps:    make([]*QuoteStep, 0, len(quote.Steps)),
	}
	for i, step := range quote.Steps {
		newStep := &QuoteStep{
			Pool:      sr.Models[i].Id().String(),
			TokenIn:   buildToken(step.TokenIn, env),
			AmountIn:  amountUi(step.TokenIn, step.AmountIn, env),
			TokenOut:  buildToken(step.TokenOut, env),
			AmountOut: amountUi(step.TokenOut, step.AmountOut, env),
			Fee:       amountUi(step.TokenIn, step.FeeAmount, env),
		}
		newQuote.QuoteSteps = append(newQuote.QuoteSteps, newStep)
	}
	return newQuote
}

func buildPool(model program.Model, env *env.Env) *Pool {
	pair := model.TokenPair()
	pool := &Pool{
		Key:     model.Id().String(),
		Program: model.Program().String(),
		TokenA:  buildToken(pair[0], env),
		TokenB:  buildToken(pair[1], env),
		Slot:    model.CurrentSlot(),
	}
	if m, ok := model.(*cpamm.Model); ok {
		pool.ReserveA = amountUi(m.Pool.TokenA, m.Pool.ReserveA, env)
		pool.ReserveB = amountUi(m.Pool.TokenB, m.Pool.ReserveB, env)
		pool.FeeBps = m.Pool.FeeBps
	}
	return pool
}
