package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/arklim/credguard/internal/core/domain"
)

// Supported hashing backends.
const (
	AlgorithmBcrypt = "bcrypt"
	AlgorithmPBKDF2 = "pbkdf2-sha512"
)

type AppConfig struct {
	App    AppSettings    `mapstructure:"app"`
	Hasher HasherSettings `mapstructure:"hasher"`
	Policy PolicySettings `mapstructure:"policy"`
}

type AppSettings struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// HasherSettings selects the key derivation backend and its work factor.
type HasherSettings struct {
	Algorithm        string `mapstructure:"algorithm"`
	BcryptCost       int    `mapstructure:"bcrypt_cost"`
	PBKDF2Iterations int    `mapstructure:"pbkdf2_iterations"`
}

// PolicySettings configures the password composition policy.
type PolicySettings struct {
	MinLength          int  `mapstructure:"min_length"`
	RequireDigit       bool `mapstructure:"require_digit"`
	RequirePunctuation bool `mapstructure:"require_punctuation"`
	GeneratedLength    int  `mapstructure:"generated_length"`
	MinStrengthScore   int  `mapstructure:"min_strength_score"`
}

// PasswordPolicy converts the settings into the immutable domain policy.
func (c *AppConfig) PasswordPolicy() domain.PasswordPolicy {
	return domain.PasswordPolicy{
		MinLength:          c.Policy.MinLength,
		RequireDigit:       c.Policy.RequireDigit,
		RequirePunctuation: c.Policy.RequirePunctuation,
		GeneratedLength:    c.Policy.GeneratedLength,
		MinStrengthScore:   c.Policy.MinStrengthScore,
	}
}

func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("CREDGUARD")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"app.name",
		"app.env",
		"app.host",
		"app.port",
		"hasher.algorithm",
		"hasher.bcrypt_cost",
		"hasher.pbkdf2_iterations",
		"policy.min_length",
		"policy.require_digit",
		"policy.require_punctuation",
		"policy.generated_length",
		"policy.min_strength_score",
	}); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Hasher.Algorithm != AlgorithmBcrypt && cfg.Hasher.Algorithm != AlgorithmPBKDF2 {
		return nil, fmt.Errorf("unsupported hasher algorithm %q", cfg.Hasher.Algorithm)
	}

	if err := cfg.PasswordPolicy().Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "credguard")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)

	v.SetDefault("hasher.algorithm", AlgorithmBcrypt)
	v.SetDefault("hasher.bcrypt_cost", 12)
	v.SetDefault("hasher.pbkdf2_iterations", 210000)

	v.SetDefault("policy.min_length", 8)
	v.SetDefault("policy.require_digit", true)
	v.SetDefault("policy.require_punctuation", true)
	v.SetDefault("policy.generated_length", 16)
	v.SetDefault("policy.min_strength_score", 0)
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "CREDGUARD_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
