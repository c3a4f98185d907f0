package router

import (
	"encoding/json"
	"fmt"
	"github.com/egaotan/solana-wayfinder/config"
	"github.com/egaotan/solana-wayfinder/env"
	"github.com/egaotan/solana-wayfinder/program"
	"github.com/egaotan/solana-wayfinder/utils"
	"github.com/gagliardetto/solana-go"
	"golang.org/x/net/context"
	"log"
	"os"
	"strings"
	"time"
)

var (
	OptimalRoute = "optimal"
)

var (
	Dijkstra   = "dijkstra"
	BruteForce = "bruteforce"
)

type Callback interface {
	OnRoute(result *Result) error
}

type Calculator interface {
	Start() error
	Stop() error
	Name() string
	Algorithm() string
	Algorithms() []string
	AddModel(model program.Model) error
	Calculate() error
}

type Result struct {
	Id           uint64
	Calculator   string
	TokenIn      solana.PublicKey
	AmountIn     uint64
	TokenOut     solana.PublicKey
	AmountOut    uint64
	MinAmountOut uint64
	Execute      bool
	Exact        bool
	Steps        []*program.SwapResult
	Models       []program.Model
}

type Optimal struct {
	ctx           context.Context
	cb            Callback
	log           *log.Logger
	logs          map[solana.PublicKey]*log.Logger
	algorithm     string
	env           *env.Env
	models        []program.Model
	graph         *Graph
	watches       []*config.Watch
	maxHops       int
	maxExpansions int
}

func NewOptimal(algorithm string, ctx context.Context, env *env.Env, watches []*config.Watch, maxHops int, maxExpansions int, cb Callback) *Optimal {
	optimal := &Optimal{
		algorithm:     algorithm,
		log:           log.Default(),
		logs:          make(map[solana.PublicKey]*log.Logger),
		cb:            cb,
		ctx:           ctx,
		env:           env,
		models:        make([]program.Model, 0),
		graph:         NewGraph(),
		watches:       watches,
		maxHops:       maxHops,
		maxExpansions: maxExpansions,
	}
	return optimal
}

func (optimal *Optimal) Start() error {
	optimal.log.Printf("start calculator: %s, %s......", optimal.Name(), optimal.Algorithm())
	optimal.build()
	optimal.routeLogs()
	return nil
}

func (optimal *Optimal) Stop() error {
	optimal.log.Printf("stop calculator: %s, %s......", optimal.Name(), optimal.Algorithm())
	optimal.save2Cache()
	return nil
}

func (optimal *Optimal) Name() string {
	return OptimalRoute
}

func (optimal *Optimal) Algorithm() string {
	return optimal.algorithm
}

func (optimal *Optimal) Algorithms() []string {
	return []string{Dijkstra, BruteForce}
}

func (optimal *Optimal) routeLogs() {
	for _, watch := range optimal.watches {
		if _, ok := optimal.logs[watch.TokenIn]; ok {
			continue
		}
		token := optimal.env.Token(watch.TokenIn)
		if token == nil {
			optimal.log.Printf("token %s is not in supported", watch.TokenIn)
			continue
		}
		optimal.logs[watch.TokenIn] = utils.NewLog(config.LogPath, fmt.Sprintf("%s_%s", optimal.Name(), strings.ToLower(token.Symbol)))
	}
}

type OptimalData struct {
	Graph  *Graph
	Models []program.Model
}

func (optimal *Optimal) save2Cache() {
	name := fmt.Sprintf("%sroute_%s.json", config.CachePath, optimal.Name())
	od := OptimalData{
		Graph:  optimal.graph,
		Models: optimal.models,
	}
	infoJson, _ := json.MarshalIndent(od, "", "    ")
	err := os.WriteFile(name, infoJson, 0644)
	if err != nil {
		panic(err)
	}
}

func (optimal *Optimal) AddModel(model program.Model) error {
	if model.Type() != program.AMM {
		return nil
	}
	optimal.models = append(optimal.models, model)
	model.SetState(program.StateUsed, true)
	return nil
}

func (optimal *Optimal) build() {
	for _, model := range optimal.models {
		tokenPair := model.TokenPair()
		if optimal.env.Token(tokenPair[0]) == nil {
			optimal.log.Printf("token %s is not in supported", tokenPair[0])
		}
		if optimal.env.Token(tokenPair[1]) == nil {
			optimal.log.Printf("token %s is not in supported", tokenPair[1])
		}
		optimal.graph.AddModel(model)
	}
}

// Snapshot clones every model into a fresh graph so a search can run while
// account updates keep flowing into the live models.
func (optimal *Optimal) Snapshot() *Graph {
	graph := NewGraph()
	for _, model := range optimal.models {
		graph.AddModel(model.Clone())
	}
	return graph
}

func (optimal *Optimal) Calculate() error {
	for _, watch := range optimal.watches {
		logger, ok := optimal.logs[watch.TokenIn]
		if !ok {
			logger = optimal.log
		}
		var sr *SearchResult
		var err error
		if optimal.algorithm == BruteForce {
			sr, err = optimal.graph.Exhaustive(watch.TokenIn, watch.AmountIn, watch.TokenOut, optimal.maxHops, logger)
		} else {
			sr, err = optimal.graph.Search(watch.TokenIn, watch.AmountIn, watch.TokenOut, optimal.maxHops, optimal.maxExpansions, logger)
		}
		if err != nil {
			logger.Printf("no route, token in: %s, token out: %s, err: %v", watch.TokenIn, watch.TokenOut, err)
			continue
		}
		steps, err := ReplaySteps(sr.Models, watch.TokenIn, watch.AmountIn)
		if err != nil {
			logger.Printf("replay err: %v", err)
			continue
		}
		logger.Printf("route found, token in: %s, amount in: %d, token out: %s, amount out: %d, hops: %d, exact: %v",
			watch.TokenIn, watch.AmountIn, watch.TokenOut, sr.AmountOut, len(sr.Models), sr.Exact)
		result := &Result{
			Id:           uint64(time.Now().UnixNano() / time.Microsecond.Nanoseconds()),
			Calculator:   optimal.Name(),
			TokenIn:      watch.TokenIn,
			AmountIn:     watch.AmountIn,
			TokenOut:     sr.TokenOut,
			AmountOut:    sr.AmountOut,
			MinAmountOut: watch.MinAmountOut,
			Execute:      watch.Execute,
			Exact:        sr.Exact,
			Steps:        steps,
			Models:       sr.Models,
		}
		optimal.cb.OnRoute(result)
	}
	return nil
}
