// internal/config/config.go
//
// Carregamento de configuração via viper: arquivo YAML (config.yaml) com
// sobreposição por variáveis de ambiente prefixadas com VALIDACNAB_.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/auth"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Port string      `mapstructure:"port"`
	Auth auth.Config `mapstructure:"auth"`
}

// Load lê a configuração do arquivo indicado ou, quando vazio, procura
// config.yaml no diretório corrente e em /etc/validacnab. A ausência do
// arquivo não é erro: defaults e variáveis de ambiente bastam para subir.
// Flags de linha de comando, quando fornecidas, sobrepõem o arquivo.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("erro ao vincular flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/validacnab")
	}

	v.SetEnvPrefix("VALIDACNAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			if cfgFile == "" {
				return nil, fmt.Errorf("erro ao ler configuração: %w", err)
			}
			if _, statErr := os.Stat(cfgFile); statErr != nil {
				return nil, fmt.Errorf("arquivo de configuração %s não encontrado: %w", cfgFile, err)
			}
			return nil, fmt.Errorf("erro ao ler configuração %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	}

	return &cfg, nil
}
