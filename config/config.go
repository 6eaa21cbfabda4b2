package config

import (
	"strings"

	viper2 "github.com/spf13/viper"
)

type Config struct {
	Env struct {
		LogLevel string `mapstructure:"logLevel"` // debug, info, warning, error
	} `mapstructure:"env"`
	Node struct {
		Listen string `mapstructure:"listen"` // 客户端与前端用户通信的监听地址
		DBPath string `mapstructure:"dbPath"`
	} `mapstructure:"node"`
	Contract struct {
		Name    string `mapstructure:"name"`
		Address string `mapstructure:"address"`
	} `mapstructure:"contract"`
	Faucet struct {
		Fund        string `mapstructure:"fund"`        // faucet 账户首次创建时的余额
		InitBalance string `mapstructure:"initBalance"` // 注册账户时转入的余额
	} `mapstructure:"faucet"`
	Redis struct {
		Addr       string `mapstructure:"addr"` // 为空时不发布转账回执
		Password   string `mapstructure:"password"`
		DB         int    `mapstructure:"db"`
		ReceiptKey string `mapstructure:"receiptKey"`
	} `mapstructure:"redis"`
}

func setDefaults(viper *viper2.Viper) {
	viper.SetDefault("env.logLevel", "info")
	viper.SetDefault("node.listen", ":9999")
	viper.SetDefault("node.dbPath", "levelDB/db/path/fundraiser")
	viper.SetDefault("contract.name", "fundraiser")
	viper.SetDefault("contract.address", "fundraiser.contract")
	viper.SetDefault("faucet.fund", "1000000000000000000000000000000")
	viper.SetDefault("faucet.initBalance", "10000000000000000000000000")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.receiptKey", "transferReceipts")
}

// Load 读取 dir 目录下的 config.yaml，环境变量 FUNDRAISER_NODE_LISTEN 之类可以覆盖配置
func Load(dir string) (*Config, error) {
	viper := viper2.New()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(dir)
	viper.SetEnvPrefix("fundraiser")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
