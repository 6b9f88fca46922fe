// Copyright 2024-2025 UpwardRight
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Load reads configuration from the given YAML file (optional) with
// environment overrides (prefix UPR, e.g. UPR_DATABASE_PASSWORD).
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("security.jwt.accessTokenDurationSec", 86400)
	v.SetDefault("security.keys.directory", "./keys")
	v.SetDefault("aggregator.timeoutSec", 5)
	v.SetDefault("verification.codeExpirationSec", 300)
	v.SetDefault("olric.discoveryMode", "local")
	v.SetDefault("technicalParameters.listenAddress", ":8080")
	v.SetDefault("technicalParameters.logLevel", "info")
	v.SetDefault("database.port", 5432)
	v.SetDefault("mail.port", 587)

	v.SetEnvPrefix("UPR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal configuration")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration is not valid")
	}

	return cfg, nil
}
