package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gabapcia/bcmonitor/internal/broadcastwatch"
	"github.com/gabapcia/bcmonitor/internal/chaincache"
	"github.com/gabapcia/bcmonitor/internal/chainmonitor"
	"github.com/gabapcia/bcmonitor/internal/config"
	"github.com/gabapcia/bcmonitor/internal/handlers/cli"
	"github.com/gabapcia/bcmonitor/internal/infra/broker/kafka"
	"github.com/gabapcia/bcmonitor/internal/infra/explorer/insight"
	"github.com/gabapcia/bcmonitor/internal/infra/storage/redis"
	"github.com/gabapcia/bcmonitor/internal/notification"
	"github.com/gabapcia/bcmonitor/internal/paymentwatch"
	"github.com/gabapcia/bcmonitor/internal/pkg/logger"
	"github.com/gabapcia/bcmonitor/internal/pkg/telemetry"
	xhttp "github.com/gabapcia/bcmonitor/internal/pkg/transport/http"
)

const serviceName = "bcmonitor"

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()

			if err := shutdown(shutdownCtx); err != nil {
				logger.Error(ctx, "telemetry shutdown failed", "error", err)
			}
		}()
	}

	store, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	cache := chaincache.New(store)

	m := &monitor{build: func(ctx context.Context) (*pipeline, error) {
		if err := cfg.ValidateMonitor(); err != nil {
			return nil, err
		}

		p := &pipeline{}

		var dispatcherOpts []notification.Option
		if len(cfg.Kafka.Brokers) > 0 {
			kcl, err := kafka.NewClient(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
			if err != nil {
				return nil, err
			}
			p.add(onClose(kcl.Close))

			dispatcherOpts = append(dispatcherOpts, notification.WithBroker(kafka.NewBroker(kcl)))
		}

		var (
			dispatcher = notification.NewDispatcher(store, dispatcherOpts...)
			payments   = paymentwatch.New(store, cache, dispatcher,
				paymentwatch.WithLocker(store),
				paymentwatch.WithFlushBufferCount(cfg.Payments.FlushBufferCount),
				paymentwatch.WithFlushBufferTimeout(cfg.Payments.FlushBufferTimeout),
			)
		)
		p.add(payments)

		var monitorOpts []chainmonitor.Option
		if cfg.ThirdPartyBroadcasts {
			broadcasts := broadcastwatch.New(store, cache, dispatcher)
			p.add(broadcasts)
			monitorOpts = append(monitorOpts, chainmonitor.WithBroadcastHandler(broadcasts))
		}

		httpClient := xhttp.NewClient()
		explorers := make(map[chainmonitor.Pair]chainmonitor.Explorer, len(cfg.Explorers))
		for _, key := range cfg.Explorers.Pairs() {
			coin, network, _ := strings.Cut(key, ".")
			pair := chainmonitor.Pair{Coin: coin, Network: network}
			explorers[pair] = insight.New(cfg.Explorers[key], cfg.ExplorerAPIs[key], httpClient)
		}

		p.add(chainmonitor.New(explorers, payments, store, cache, dispatcher, monitorOpts...))
		return p, nil
	}}

	return cli.Run(ctx, m, store, cache)
}
