package app

import (
	"context"
	"fmt"
	"github.com/egaotan/solana-wayfinder/dingsdk"
	"github.com/egaotan/solana-wayfinder/env"
	"strings"
	"sync"
	"time"
)

type Notify struct {
	ctx  context.Context
	wg   sync.WaitGroup
	env  *env.Env
	data chan *RouteData
	dsdk *dingsdk.DingSdk
}

func NewNotify(ctx context.Context, env *env.Env, dsdk *dingsdk.DingSdk) *Notify {
	bl := &Notify{
		ctx:  ctx,
		env:  env,
		dsdk: dsdk,
		data: make(chan *RouteData, 32),
	}
	return bl
}

func (notify *Notify) Start() {
	notify.wg.Add(1)
	go notify.listen()
}

func (notify *Notify) Commit(data *RouteData) {
	notify.data <- data
}

func (notify *Notify) listen() {
	defer notify.wg.Done()
	for {
		select {
		case data := <-notify.data:
			notify.tryNotify(data)
		case <-notify.ctx.Done():
			return
		}
	}
}

func (notify *Notify) tryNotify(data *RouteData) {
	items := make([]string, 0)
	tt := int64(data.id)
	ttStr := time.Unix(tt/1000000, 0).Format("2006-01-02 15:04:05")
	items = append(items, "route: ")
	items = append(items, fmt.Sprintf("id: %d;", tt))
	items = append(items, fmt.Sprintf("time: %s;", ttStr))
	items = append(items, fmt.Sprintf("state: %s;", data.state.String()))
	items = append(items, fmt.Sprintf("amount in: %s;", amountUi(data.tokenIn, data.amountIn, notify.env)))
	items = append(items, fmt.Sprintf("amount out: %s;", amountUi(data.tokenOut, data.amountOut, notify.env)))
	items = append(items, fmt.Sprintf("min amount out: %s;", amountUi(data.tokenOut, data.minAmountOut, notify.env)))
	for _, step := range data.steps {
		tokenIn := buildToken(step.tokenIn, notify.env)
		tokenOut := buildToken(step.tokenOut, notify.env)
		items = append(items, fmt.Sprintf("%s: %s(%s)->%s(%s);", step.model.Id().String(),
			tokenIn.Symbol, amountUi(step.tokenIn, step.amountIn, notify.env),
			tokenOut.Symbol, amountUi(step.tokenOut, step.amountOut, notify.env)))
	}
	text := strings.Join(items, "\n")
	dingNotify := &dingsdk.DingNotify{
		MsgType: "text",
		Text: dingsdk.DingContent{
			Content: text,
		},
		At: dingsdk.DingAt{
			IsAtAll: false,
		},
	}
	notify.dsdk.Notify(dingNotify)
}
