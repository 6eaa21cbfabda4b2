package main

import (
	"flag"
	"strings"

	"github.com/cloudflare/cfssl/log"
	"github.com/vitaliksokil/ch-7-tutorial/client"
	"github.com/vitaliksokil/ch-7-tutorial/config"
	"github.com/vitaliksokil/ch-7-tutorial/contract"
	"github.com/vitaliksokil/ch-7-tutorial/levelDB"
	"github.com/vitaliksokil/ch-7-tutorial/meta"
	"github.com/vitaliksokil/ch-7-tutorial/redis"
	"github.com/vitaliksokil/ch-7-tutorial/util"
)

func main() {
	configDir := flag.String("c", "./config", "config directory")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		log.Fatalf("load config error: %s", err)
	}
	log.Level = logLevel(cfg.Env.LogLevel)

	fund, err := meta.ParseAmount(cfg.Faucet.Fund)
	if err != nil {
		log.Fatalf("invalid faucet.fund: %s", cfg.Faucet.Fund)
	}
	initBalance, err := meta.ParseAmount(cfg.Faucet.InitBalance)
	if err != nil {
		log.Fatalf("invalid faucet.initBalance: %s", cfg.Faucet.InitBalance)
	}

	if !util.FileExists(cfg.Node.DBPath) {
		log.Infof("创建新的数据库: %s", cfg.Node.DBPath)
	}
	db, err := levelDB.InitDB(cfg.Node.DBPath)
	if err != nil {
		log.Fatalf("open db error: %s", err)
	}
	defer db.Close()

	opts := contract.Options{
		Name:        cfg.Contract.Name,
		Address:     cfg.Contract.Address,
		FaucetFund:  fund,
		InitBalance: initBalance,
		ReceiptKey:  cfg.Redis.ReceiptKey,
	}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer rdb.Close()
		if err := rdb.Ping(); err != nil {
			log.Warningf("redis %s 不可用，转账回执将无法发布: %s", cfg.Redis.Addr, err)
		}
		opts.Outbox = rdb
	}

	rt, err := contract.NewRuntime(db, opts)
	if err != nil {
		log.Fatalf("start runtime error: %s", err)
	}

	if err := client.ListenRequest(cfg.Node.Listen, rt); err != nil {
		log.Errorf("http server stopped: %s", err)
	}
}

func logLevel(level string) int {
	switch strings.ToLower(level) {
	case "debug":
		return log.LevelDebug
	case "warning", "warn":
		return log.LevelWarning
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
