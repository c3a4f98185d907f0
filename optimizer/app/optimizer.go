package app

import (
	"encoding/json"
	"fmt"
	"github.com/egaotan/solana-wayfinder/backend"
	"github.com/egaotan/solana-wayfinder/config"
	"github.com/egaotan/solana-wayfinder/cpamm"
	"github.com/egaotan/solana-wayfinder/dingsdk"
	"github.com/egaotan/solana-wayfinder/env"
	"github.com/egaotan/solana-wayfinder/networkdetect"
	"github.com/egaotan/solana-wayfinder/program"
	"github.com/egaotan/solana-wayfinder/router"
	"github.com/egaotan/solana-wayfinder/statelisten"
	"github.com/egaotan/solana-wayfinder/store"
	"github.com/egaotan/solana-wayfinder/system"
	"github.com/egaotan/solana-wayfinder/wayfinder"
	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/net/context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var (
	Init    = int32(0)
	Started = int32(1)
	Pause   = int32(2)
	Stopped = int32(3)
)

type RouteStep struct {
	model     program.Model
	tokenIn   solana.PublicKey
	amountIn  uint64
	slotIn    uint64
	tokenOut  solana.PublicKey
	amountOut uint64
	slotOut   uint64
	feeAmount uint64
}

type RouteData struct {
	id           uint64
	tokenIn      solana.PublicKey
	amountIn     uint64
	tokenOut     solana.PublicKey
	amountOut    uint64
	minAmountOut uint64
	exact        bool
	state        solana.PublicKey
	steps        []*RouteStep
}

type InfoUpdated struct {
	Slot uint64
}

type Optimizer struct {
	ctx              context.Context
	log              *log.Logger
	config           *config.Config
	wg               sync.WaitGroup
	status           int32
	trade            chan *InfoUpdated
	backend          *backend.Backend
	env              *env.Env
	system           *system.Program
	wayfinder        *wayfinder.Program
	programs         map[solana.PublicKey]program.Program
	tokens           map[solana.PublicKey]bool
	poolAccounts     map[solana.PublicKey]bool
	calculators      []router.Calculator
	optimal          *router.Optimal
	nodeId           int
	store            *store.Store
	notify           *Notify
	stateListen      *statelisten.StateListen
	httpServer       *http.Server
	rpcPort          string
	cache            map[string]uint64
	latestCommitTime int64
	nd               *networkdetect.NetworkDetector
}

func NewProgram(programId solana.PublicKey, ctx context.Context, which int, env *env.Env, b *backend.Backend, cb program.Callback) program.Program {
	if programId == program.CpAmm {
		return cpamm.NewProgram(programId, ctx, which, env, b, cb)
	}
	panic(fmt.Errorf("program (%s) is not support", programId))
}

func NewCalculator(name string, ctx context.Context, cfg *config.Config, env *env.Env, cb router.Callback) router.Calculator {
	if name == router.OptimalRoute {
		return router.NewOptimal(router.Dijkstra, ctx, env, cfg.Watches, cfg.MaxHops, cfg.MaxExpansions, cb)
	}
	panic(fmt.Errorf("calculator (%s) is not support", name))
}

func NewOptimizer(ctx context.Context, cfg *config.Config) *Optimizer {
	opt := &Optimizer{
		ctx:          ctx,
		config:       cfg,
		trade:        make(chan *InfoUpdated),
		tokens:       make(map[solana.PublicKey]bool),
		poolAccounts: make(map[solana.PublicKey]bool),
		cache:        make(map[string]uint64),
		rpcPort:      cfg.Listen,
		nodeId:       cfg.NodeId,
	}
	//
	logger := log.Default()
	fileName := fmt.Sprintf("%s%s.log", config.LogPath, "optimizer")
	file, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		panic(err)
	}
	logger.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.SetOutput(file)
	opt.log = logger
	//
	store := store.NewStore(ctx, cfg.DBUrl, cfg.DBScheme, cfg.DBUser, cfg.DBPasswd)
	opt.store = store
	backend := backend.NewBackend(ctx, cfg.Nodes, cfg.Transaction, cfg.TransactionNodes)
	backend.ImportWallet(cfg.Key)
	backend.SetPlayer(cfg.User)
	backend.SetStore(store)
	opt.backend = backend
	system := system.NewProgram(ctx, backend)
	opt.system = system
	env := env.NewEnv(ctx)
	opt.env = env
	opt.wayfinder = wayfinder.NewProgram(cfg.WayfinderContract, ctx, backend)
	//
	dsdk := dingsdk.NewDingSdk(cfg.DingUrl)
	opt.notify = NewNotify(ctx, env, dsdk)
	opt.nd = networkdetect.NewNetworkDetector(cfg.Nodes[0].Ws, dsdk)
	//
	programs := make(map[solana.PublicKey]program.Program)
	for _, program := range cfg.Programs {
		programs[program] = NewProgram(program, ctx, cfg.Which, env, backend, opt)
	}
	opt.programs = programs
	opt.stateListen = statelisten.NewStateListen(ctx, programs, env)
	routers := make([]router.Calculator, 0, len(cfg.Calculators))
	for _, name := range cfg.Calculators {
		routers = append(routers, NewCalculator(name, ctx, cfg, env, opt))
	}
	opt.calculators = routers
	for _, calculator := range routers {
		if optimal, ok := calculator.(*router.Optimal); ok {
			opt.optimal = optimal
		}
	}
	opt.status = Init
	return opt
}

func (opt *Optimizer) Service() {
	opt.Start()
	opt.StartRPC()
	<-opt.ctx.Done()
	opt.StopRPC()
	opt.Stop()
}

func (opt *Optimizer) Start() {
	if opt.config.NetStatus {
		opt.nd.Start()
	}
	opt.store.Start()
	opt.backend.Start()
	opt.env.Start()
	if err := opt.system.Start(); err != nil {
		opt.log.Printf("system program start err: %v", err)
	}
	if err := opt.wayfinder.Start(); err != nil {
		opt.log.Printf("wayfinder program start err: %v", err)
	}
	opt.notify.Start()
	for _, program := range opt.programs {
		if err := program.Start(); err != nil {
			opt.log.Printf("program %s start err: %v", program.Name(), err)
		}
	}
	if opt.config.Which == config.MarketFromRegistry {
		opt.loadRegistry()
	}
	for _, calculator := range opt.calculators {
		if err := calculator.Start(); err != nil {
			opt.log.Printf("calculator %s:%s start err: %v", calculator.Name(), calculator.Algorithm(), err)
		}
	}
	for _, program := range opt.programs {
		if err := program.Flash(); err != nil {
			opt.log.Printf("program %s flash err: %v", program.Name(), err)
		}
	}
	if opt.config.DumpState {
		opt.stateListen.Start()
	}
	opt.wg.Add(1)
	go opt.Tick()
	opt.backend.SubscribeSlot(opt)
	opt.status = Started
	opt.log.Printf("wayfinder server has started......")
}

func (opt *Optimizer) Stop() {
	if opt.config.NetStatus {
		opt.nd.Stop()
	}
	opt.backend.Stop()
	opt.wg.Wait()
	if err := opt.system.Stop(); err != nil {
		opt.log.Printf("system program stop err: %v", err)
	}
	if err := opt.wayfinder.Stop(); err != nil {
		opt.log.Printf("wayfinder program stop err: %v", err)
	}
	for _, program := range opt.programs {
		if err := program.Stop(); err != nil {
			opt.log.Printf("program %s stop err: %v", program.Name(), err)
		}
	}
	for _, calculator := range opt.calculators {
		if err := calculator.Stop(); err != nil {
			opt.log.Printf("calculator %s:%s stop err: %v", calculator.Name(), calculator.Algorithm(), err)
		}
	}
	opt.env.Stop()
	opt.store.Stop()
	opt.save2Cache()
	opt.status = Stopped
	opt.log.Printf("wayfinder server has stopped......")
}

func (opt *Optimizer) StartRPC() {
	router := gin.New()
	g := router.Group("/api")
	g.GET("/route", opt.getRoute)
	g.GET("/quote", opt.getQuote)
	g.GET("/pools", opt.getPools)
	opt.httpServer = &http.Server{
		Addr:    opt.rpcPort,
		Handler: router,
	}
	opt.log.Printf("start rpc server......")
	go func() {
		if err := opt.httpServer.ListenAndServe(); err != nil {
			opt.log.Printf("ListenAndServe: %s", err.Error())
		}
	}()
}

func (opt *Optimizer) StopRPC() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := opt.httpServer.Shutdown(ctx); err != nil {
		panic(err)
	}
	opt.log.Printf("rpc server has stopped......")
}

func (opt *Optimizer) loadRegistry() {
	pools, err := opt.wayfinder.RegistryPools(opt.config.RegistryAccount)
	if err != nil {
		opt.log.Printf("load registry err: %v", err)
		return
	}
	layouts := make([]cpamm.PoolLayout, 0, len(pools))
	height := uint64(0)
	for _, pool := range pools {
		layouts = append(layouts, pool.PoolLayout)
		height = pool.Height
	}
	for _, p := range opt.programs {
		if cp, ok := p.(*cpamm.Program); ok {
			cp.LoadRegistered(height, layouts)
		}
	}
	opt.log.Printf("registry pools loaded, count: %d", len(pools))
}

func (opt *Optimizer) save2Cache() {
	{
		infoJson, _ := json.MarshalIndent(opt.tokens, "", "    ")
		err := os.WriteFile(config.UsableTokensFile, infoJson, 0644)
		if err != nil {
			panic(err)
		}
	}
	{
		infoJson, _ := json.MarshalIndent(opt.poolAccounts, "", "    ")
		err := os.WriteFile(config.UsablePoolAccounts, infoJson, 0644)
		if err != nil {
			panic(err)
		}
	}
}

func (opt *Optimizer) OnModelInit(model program.Model) error {
	tokenPair := model.TokenPair()
	opt.tokens[tokenPair[0]] = true
	opt.tokens[tokenPair[1]] = true
	opt.poolAccounts[model.Id()] = true
	for _, calculator := range opt.calculators {
		if err := calculator.AddModel(model); err != nil {
			return err
		}
	}
	return nil
}

func (opt *Optimizer) GetProgram(id solana.PublicKey) program.Program {
	for _, program := range opt.programs {
		if program.Id() == id {
			return program
		}
	}
	return nil
}

func (opt *Optimizer) OnSlotUpdate(slot *backend.Slot) error {
	locked := atomic.CompareAndSwapInt32(&opt.status, Started, Pause)
	if !locked {
		return nil
	}
	opt.trade <- &InfoUpdated{
		Slot: slot.Number,
	}
	return nil
}

func (opt *Optimizer) OnStateUpdate(slot uint64) error {
	locked := atomic.CompareAndSwapInt32(&opt.status, Started, Pause)
	if !locked {
		return nil
	}
	opt.trade <- &InfoUpdated{
		Slot: slot,
	}
	return nil
}

func (opt *Optimizer) Tick() {
	defer opt.wg.Done()
	for {
		select {
		case info := <-opt.trade:
			opt.try(info)
			atomic.StoreInt32(&opt.status, Started)
		case <-opt.ctx.Done():
			opt.log.Printf("route tick exit")
			return
		}
	}
}

func (opt *Optimizer) try(info *InfoUpdated) {
	opt.log.Printf("**************** slot update: %d ****************", info.Slot)
	for _, calculator := range opt.calculators {
		calculator.Calculate()
	}
}

func (opt *Optimizer) OnRoute(result *router.Result) error {
	opt.log.Printf("got a route, id: %d, calculator: %s, amount out: %d, exact: %v",
		result.Id, result.Calculator, result.AmountOut, result.Exact)
	data := &RouteData{
		id:           result.Id,
		tokenIn:      result.TokenIn,
		amountIn:     result.AmountIn,
		tokenOut:     result.TokenOut,
		amountOut:    result.AmountOut,
		minAmountOut: result.MinAmountOut,
		exact:        result.Exact,
		steps:        make([]*RouteStep, 0, len(result.Steps)),
	}
	for i, step := range result.Steps {
		data.steps = append(data.steps, &RouteStep{
			model:     result.Models[i],
			tokenIn:   step.TokenIn,
			amountIn:  step.AmountIn,
			slotIn:    step.SlotIn,
			tokenOut:  step.TokenOut,
			amountOut: step.AmountOut,
			slotOut:   step.SlotOut,
			feeAmount: step.FeeAmount,
		})
	}
	localRoute := &store.LocalRoute{
		Id:              data.id,
		TokenIn:         data.tokenIn.String(),
		AmountIn:        data.amountIn,
		TokenOut:        data.tokenOut.String(),
		AmountOut:       data.amountOut,
		Hops:            len(data.steps),
		Exact:           data.exact,
		LocalRouteSteps: make([]*store.LocalRouteStep, 0, len(data.steps)),
	}
	for _, step := range data.steps {
		localStep := &store.LocalRouteStep{
			Program:      step.model.Program().String(),
			Pool:         step.model.Id().String(),
			TokenIn:      step.tokenIn.String(),
			AmountIn:     step.amountIn,
			SlotIn:       step.slotIn,
			TokenOut:     step.tokenOut.String(),
			AmountOut:    step.amountOut,
			SlotOut:      step.slotOut,
			FeeAmount:    step.feeAmount,
			LocalRouteId: data.id,
		}
		localRoute.LocalRouteSteps = append(localRoute.LocalRouteSteps, localStep)
	}
	opt.store.StoreLocalRoute(localRoute)
	//
	if !result.Execute {
		return nil
	}
	if !opt.config.Transaction {
		opt.log.Printf("transaction is not enabled")
		return nil
	}
	if data.amountOut < data.minAmountOut {
		opt.log.Printf("the amount out is %d, less than %d, discard......", data.amountOut, data.minAmountOut)
		return nil
	}
	sb := strings.Builder{}
	sb.Write(data.tokenIn.Bytes())
	for _, model := range result.Models {
		sb.Write(model.Id().Bytes())
	}
	cacheKey := sb.String()
	if last, ok := opt.cache[cacheKey]; ok && data.id-last < 60*1000000 {
		opt.log.Printf("the route has been committed in 60 seconds......")
		return nil
	}
	opt.cache[cacheKey] = data.id
	if err := opt.Execute(data); err != nil {
		opt.log.Printf("execute err: %v", err)
	}
	return nil
}

type RouteInfo struct {
	LocalRoutes     []*LocalRoute
	CommittedRoutes []*CommittedRoute
	ExecutedRoutes  []*ExecutedRoute
}

func (opt *Optimizer) getRoute(c *gin.Context) {
	idStr, ok := c.GetQuery("id")
	if !ok {
		c.JSON(500, "parameter is invalid")
		return
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.JSON(500, err)
		return
	}
	localRoutes, err := opt.store.GetLocalRoute(id)
	if err != nil {
		c.JSON(500, err)
		return
	}
	committedRoutes, err := opt.store.GetCommittedRoute(id)
	if err != nil {
		c.JSON(500, err)
		return
	}
	executedRoutes, err := opt.store.GetExecutedRoute(id)
	if err != nil {
		c.JSON(500, err)
		return
	}
	c.JSON(200, &RouteInfo{
		LocalRoutes:     buildLocalRoutes(localRoutes, opt.env),
		CommittedRoutes: buildCommittedRoutes(committedRoutes, opt.env),
		ExecutedRoutes:  buildExecutedRoutes(executedRoutes),
	})
}

func (opt *Optimizer) getQuote(c *gin.Context) {
	tokenInStr, ok := c.GetQuery("token_in")
	if !ok {
		c.JSON(500, "parameter is invalid")
		return
	}
	tokenOutStr, ok := c.GetQuery("token_out")
	if !ok {
		c.JSON(500, "parameter is invalid")
		return
	}
	amountInStr, ok := c.GetQuery("amount_in")
	if !ok {
		c.JSON(500, "parameter is invalid")
		return
	}
	tokenIn, err := solana.PublicKeyFromBase58(tokenInStr)
	if err != nil {
		c.JSON(500, err)
		return
	}
	tokenOut, err := solana.PublicKeyFromBase58(tokenOutStr)
	if err != nil {
		c.JSON(500, err)
		return
	}
	amountIn, err := strconv.ParseUint(amountInStr, 10, 64)
	if err != nil {
		c.JSON(500, err)
		return
	}
	if opt.optimal == nil {
		c.JSON(500, "no calculator")
		return
	}
	graph := opt.optimal.Snapshot()
	sr, err := graph.Search(tokenIn, amountIn, tokenOut, opt.config.MaxHops, opt.config.MaxExpansions, opt.log)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	quote, err := router.BuildQuote(sr.Models, tokenIn, amountIn)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	c.JSON(200, buildQuote(quote, sr, opt.env))
}

func (opt *Optimizer) getPools(c *gin.Context) {
	pools := make([]*Pool, 0)
	for _, program := range opt.programs {
		for _, market := range program.Markets() {
			pools = append(pools, buildPool(market, opt.env))
		}
	}
	c.JSON(200, pools)
}
