package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	// roomd
	Mode             string        `mapstructure:"mode"`
	Port             int           `mapstructure:"port"`
	StaticPath       string        `mapstructure:"static_path"`
	ReadLimit        int64         `mapstructure:"read_limit"`
	PingPeriod       time.Duration `mapstructure:"ping_period"`
	Secret           string        `mapstructure:"secret"`
	MaxMembers       int           `mapstructure:"max_members"`
	JoinRateLimit    int           `mapstructure:"join_rate_limit"`
	JoinRateInterval time.Duration `mapstructure:"join_rate_interval"`

	// voicejoin
	Backend              string   `mapstructure:"backend"`
	ServerURL            string   `mapstructure:"server_url"`
	Room                 string   `mapstructure:"room"`
	MemberPrefix         string   `mapstructure:"member_prefix"`
	Credential           string   `mapstructure:"credential"`
	LogLevel             string   `mapstructure:"log_level"`
	Facing               string   `mapstructure:"facing"`
	CaptureWidth         int      `mapstructure:"capture_width"`
	CaptureHeight        int      `mapstructure:"capture_height"`
	Cameras              []string `mapstructure:"cameras"`
	CameraPermission     bool     `mapstructure:"camera_permission"`
	MicrophonePermission bool     `mapstructure:"microphone_permission"`
	SubscribeAllow       []string `mapstructure:"subscribe_allow"`
}

const (
	BackendWS       = "ws"
	BackendLoopback = "loopback"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("secret", "voicejoin-dev-secret")
	v.SetDefault("max_members", 0)
	v.SetDefault("join_rate_limit", 5)
	v.SetDefault("join_rate_interval", "1m")

	v.SetDefault("backend", BackendWS)
	v.SetDefault("server_url", "ws://localhost:8080/api/ws/signal")
	v.SetDefault("room", "")
	v.SetDefault("member_prefix", "member_")
	v.SetDefault("credential", "")
	v.SetDefault("log_level", "trace")
	v.SetDefault("facing", "front")
	v.SetDefault("capture_width", 800)
	v.SetDefault("capture_height", 800)
	v.SetDefault("cameras", []string{"front:Front Camera", "back:Back Camera"})
	v.SetDefault("camera_permission", true)
	v.SetDefault("microphone_permission", true)
	v.SetDefault("subscribe_allow", []string{})
}

// Load merges defaults, config/config.<CONFIG_ENV>.yaml, VOICEJOIN_* env
// vars and the changed flags of fs, in increasing precedence. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)
	v.SetConfigFile(fileName)

	setDefaults(v)

	v.SetEnvPrefix("VOICEJOIN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log.Debug().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Str("backend", cfg.Backend).Msg("config ready")
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Backend != BackendWS && c.Backend != BackendLoopback {
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.CaptureWidth <= 0 || c.CaptureHeight <= 0 {
		return errors.New("capture size must be positive")
	}
	return nil
}

// ServerFlags registers the roomd flags.
func ServerFlags(fs *pflag.FlagSet) {
	fs.String("mode", "release", "gin mode: debug or release")
	fs.Int("port", 8080, "listen port")
	fs.String("static_path", "./web", "static files directory")
	fs.Int("max_members", 0, "members per room, 0 for unlimited")
	fs.Int("join_rate_limit", 5, "join attempts per client per interval, 0 disables")
}

// ClientFlags registers the voicejoin flags.
func ClientFlags(fs *pflag.FlagSet) {
	fs.String("backend", BackendWS, "room backend: ws or loopback")
	fs.String("server_url", "ws://localhost:8080/api/ws/signal", "roomd signal endpoint")
	fs.String("room", "", "room name, random when empty")
	fs.String("member_prefix", "member_", "member display name prefix")
	fs.String("credential", "", "media context credential")
	fs.String("log_level", "trace", "log verbosity")
	fs.String("facing", "front", "camera facing: front, back or any")
	fs.StringSlice("subscribe_allow", nil, "only subscribe to these publisher names")
}
