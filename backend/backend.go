package backend

import (
	"context"
	"github.com/egaotan/solana-wayfinder/config"
	"github.com/egaotan/solana-wayfinder/store"
	"github.com/egaotan/solana-wayfinder/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"log"
	"sync"
)

type Backend struct {
	logger          *log.Logger
	txLogger        *log.Logger
	rpcClient       *rpc.Client
	wsClients       []*ws.Client
	ctx             context.Context
	wg              sync.WaitGroup
	accountSubs     []*ws.AccountSubscription
	slotSubs        []*ws.SlotSubscription
	wallets         []*Wallet
	player          solana.PublicKey
	lock            int32
	cachedBlockHash []solana.Hash
	updateBlockHash chan uint64
	transaction     bool
	store           *store.Store
	commandChans    []chan *Command
	clients         []*rpc.Client
}

func NewBackend(ctx context.Context, nodes []*config.Node, transaction bool, transactionNodes []*config.Node) *Backend {
	rpcClient := rpc.New(nodes[0].Rpc)
	wsClients := make([]*ws.Client, 0, len(nodes))
	for _, node := range nodes {
		wsClient, err := ws.Connect(ctx, node.Ws)
		if err != nil {
			panic(err)
		}
		wsClients = append(wsClients, wsClient)
	}
	backend := &Backend{
		rpcClient:       rpcClient,
		wsClients:       wsClients,
		ctx:             ctx,
		logger:          utils.NewLog(config.LogPath, config.BackendLog),
		txLogger:        utils.NewLog(config.LogPath, config.SentTxHash),
		accountSubs:     make([]*ws.AccountSubscription, 0),
		slotSubs:        make([]*ws.SlotSubscription, 0),
		updateBlockHash: make(chan uint64, 1024),
		cachedBlockHash: make([]solana.Hash, 0, 3),
		transaction:     transaction,
	}
	commandChans := make([]chan *Command, 0, len(transactionNodes))
	clients := make([]*rpc.Client, 0, len(transactionNodes))
	for _, node := range transactionNodes {
		commandChans = append(commandChans, make(chan *Command, 1024))
		clients = append(clients, rpc.New(node.Rpc))
	}
	backend.commandChans = commandChans
	backend.clients = clients
	return backend
}

func (backend *Backend) Start() {
	if !backend.transaction {
		return
	}
	backend.startExecutor()
	// recent block hash cache, refreshed from the slot subscription
	backend.wg.Add(1)
	go backend.CacheRecentBlockHash()
	backend.cachedBlockHash = append(backend.cachedBlockHash, []solana.Hash{{}, {}, {}}...)
}

func (backend *Backend) Stop() {
	for _, slotSub := range backend.slotSubs {
		slotSub.Unsubscribe()
	}
	for _, accountSub := range backend.accountSubs {
		accountSub.Unsubscribe()
	}
	backend.wg.Wait()
}

func (backend *Backend) SetStore(store *store.Store) {
	backend.store = store
}
