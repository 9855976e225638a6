package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ilyakaznacheev/cleanenv"
)

// Загрузка конфигурации из config.yaml через cleanenv, переменные окружения перекрывают файл

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Chain     ChainConfig     `yaml:"chain"`
	Discord   DiscordConfig   `yaml:"discord"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Logger    LoggerConfig    `yaml:"logger"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env-default:"10s"` // для /price
}

type SchedulerConfig struct {
	Enabled      bool          `yaml:"enabled" env:"SCHEDULER_ENABLED"`
	Interval     time.Duration `yaml:"interval" env:"SCHEDULER_INTERVAL" env-default:"5m"`
	CycleTimeout time.Duration `yaml:"cycle_timeout" env:"SCHEDULER_CYCLE_TIMEOUT"` // 0 - без дедлайна
	RunOnStart   bool          `yaml:"run_on_start" env:"SCHEDULER_RUN_ON_START"`
}

type ChainConfig struct {
	RPCURL               string        `yaml:"rpc_url" env:"RPC_URL" env-default:"https://evm.cronos.org/"`
	TokenAddress         string        `yaml:"token_address" env:"TOKEN_ADDRESS" env-default:"0xB770074eA2A8325440798fDF1c29B235b31922Ae"`
	RouterAddress        string        `yaml:"router_address" env:"ROUTER_ADDRESS" env-default:"0x145863Eb42Cf62847A6Ca784e6416C1682b1b2Ae"`
	IntermediateAddress  string        `yaml:"intermediate_address" env-default:"0x5C7F8A570d578ED84E63fdFA7b1eE72dEae1AE23"` // WCRO
	StableAddress        string        `yaml:"stable_address" env-default:"0xc21223249CA28397B4B6541dfFaEcC539BfF0c59"`       // USDC
	IntermediateDecimals uint8         `yaml:"intermediate_decimals" env-default:"18"`
	IntermediateSymbol   string        `yaml:"intermediate_symbol" env-default:"CRO"`
	DialTimeout          time.Duration `yaml:"dial_timeout" env-default:"10s"`
}

type DiscordConfig struct {
	Enabled      bool          `yaml:"enabled" env:"DISCORD_ENABLED"`
	Token        string        `yaml:"token" env:"DISCORD_TOKEN"`
	ChannelID    string        `yaml:"channel_id" env:"DISCORD_CHANNEL_ID"`
	BaseURL      string        `yaml:"base_url" env-default:"https://discord.com/api/v10"`
	Timeout      time.Duration `yaml:"timeout" env-default:"10s"`
	UserAgent    string        `yaml:"user_agent" env-default:"token-price-notifier/1.0"`
	ThumbnailURL string        `yaml:"thumbnail_url" env:"DISCORD_THUMBNAIL_URL" env-default:"https://hebbkx1anhila5yf.public.blob.vercel-storage.com/Cry_coin-V82PHcxklF3Cz3LiVLsFExW3mv9nCg.webp"`
	Color        int           `yaml:"color" env-default:"16766720"` // 0xffd700
}

type TelegramConfig struct {
	Enabled bool   `yaml:"enabled" env:"TELEGRAM_ENABLED" env-default:"false"`
	Token   string `yaml:"token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID  int64  `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
}

type LoggerConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"` // debug|info|warn|error
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"` // text|json
}

func LoadConfig() (*Config, error) {
	return load(fetchConfigPath())
}

// defaults - значения, для которых false или 0 осмысленны. cleanenv подставляет env-default
// в любое нулевое поле после чтения файла, поэтому такие поля заполняются до него.
func defaults() *Config {
	return &Config{
		Scheduler: SchedulerConfig{
			Enabled:      true,
			CycleTimeout: 30 * time.Second,
			RunOnStart:   true,
		},
		Discord: DiscordConfig{Enabled: true},
	}
}

func load(configPath string) (*Config, error) {
	cfg := defaults()

	// Try to read from config file if specified
	if configPath != "" {
		if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	// Read from environment variables
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate - ошибки конфигурации ловим на старте, а не в первом цикле
func (c *Config) Validate() error {
	var errs []error

	if c.Chain.RPCURL == "" {
		errs = append(errs, errors.New("chain.rpc_url is empty"))
	}
	addrs := []struct{ name, value string }{
		{"chain.token_address", c.Chain.TokenAddress},
		{"chain.router_address", c.Chain.RouterAddress},
		{"chain.intermediate_address", c.Chain.IntermediateAddress},
		{"chain.stable_address", c.Chain.StableAddress},
	}
	for _, a := range addrs {
		if !common.IsHexAddress(a.value) {
			errs = append(errs, fmt.Errorf("%s: invalid address %q", a.name, a.value))
		}
	}

	if c.Discord.Enabled {
		if c.Discord.Token == "" {
			errs = append(errs, errors.New("discord.token is required (DISCORD_TOKEN)"))
		}
		if c.Discord.ChannelID == "" {
			errs = append(errs, errors.New("discord.channel_id is required (DISCORD_CHANNEL_ID)"))
		}
	}
	if c.Telegram.Enabled {
		if c.Telegram.Token == "" {
			errs = append(errs, errors.New("telegram.token is required (TELEGRAM_BOT_TOKEN)"))
		}
		if c.Telegram.ChatID == 0 {
			errs = append(errs, errors.New("telegram.chat_id is required (TELEGRAM_CHAT_ID)"))
		}
	}
	if !c.Discord.Enabled && !c.Telegram.Enabled {
		errs = append(errs, errors.New("no notifier enabled"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func fetchConfigPath() string {
	var res string
	flag.StringVar(&res, "c", "", "config file path")
	flag.Parse()
	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	return res
}
