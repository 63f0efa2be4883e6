package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	SelfDestructSilent = "silent"
	SelfDestructScore  = "score"

	FriendlyFirst = "friendly-first"
	EnemyFirst    = "enemy-first"
)

// Settings tunes a simulation run. Everything has a default, so the settings
// file is optional.
type Settings struct {
	LogLevel      string `mapstructure:"logLevel"`
	Ticks         int    `mapstructure:"ticks"`
	InitialHealth int    `mapstructure:"initialHealth"`
	InitialCores  int    `mapstructure:"initialCores"`
	InitialBits   int    `mapstructure:"initialBits"`
	SelfDestruct  string `mapstructure:"selfDestruct"`
	MovementOrder string `mapstructure:"movementOrder"`
	Catalog       string `mapstructure:"catalog"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("ticks", 100)
	v.SetDefault("initialHealth", 30)
	v.SetDefault("initialCores", 5)
	v.SetDefault("initialBits", 6)
	v.SetDefault("selfDestruct", SelfDestructSilent)
	v.SetDefault("movementOrder", FriendlyFirst)
	v.SetDefault("catalog", "")
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() *Settings {
	s, err := decode(newViper())
	if err != nil {
		panic(err) // defaults are static
	}
	return s
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("LANESIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads lanesim.yaml from configDir when it exists. A missing file keeps
// the defaults; a malformed one is an error. LANESIM_* environment variables
// override both.
func Load(configDir string) (*Settings, error) {
	v := newViper()
	v.SetConfigName("lanesim")
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	s, err := decode(v)
	if err != nil {
		return nil, err
	}
	return s, s.Validate()
}

func decode(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	var errs []error
	if s.Ticks < 0 {
		errs = append(errs, fmt.Errorf("ticks must be >= 0, got %d", s.Ticks))
	}
	if s.InitialHealth <= 0 {
		errs = append(errs, fmt.Errorf("initialHealth must be > 0, got %d", s.InitialHealth))
	}
	switch s.SelfDestruct {
	case SelfDestructSilent, SelfDestructScore:
	default:
		errs = append(errs, fmt.Errorf("selfDestruct must be %q or %q, got %q", SelfDestructSilent, SelfDestructScore, s.SelfDestruct))
	}
	switch s.MovementOrder {
	case FriendlyFirst, EnemyFirst:
	default:
		errs = append(errs, fmt.Errorf("movementOrder must be %q or %q, got %q", FriendlyFirst, EnemyFirst, s.MovementOrder))
	}
	return errors.Join(errs...)
}
