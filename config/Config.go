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

type Config struct {
	Database            DatabaseConfig
	Security            SecurityConfig
	Aggregator          AggregatorConfig
	Mail                MailConfig
	Verification        VerificationConfig
	Olric               OlricConfig
	TechnicalParameters TechnicalParameters
}

type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"required"`
	Name     string `validate:"required"`
	Username string `validate:"required"`
	Password string `validate:"required" sensitive:"true"`
}

type SecurityConfig struct {
	ProductionMode bool
	Jwt            JwtConfig
	Keys           KeysConfig
	AllowedOrigins []string
}

// JwtConfig intentionally carries no signing key: the key is generated at
// process start and held in memory only, so every restart invalidates all
// previously issued tokens.
type JwtConfig struct {
	AccessTokenDurationSec int `validate:"gt=600"`
}

type KeysConfig struct {
	// Directory holding the credential-encryption keypair (public.key / private.key).
	Directory string `validate:"required"`
}

type AggregatorConfig struct {
	Url        string `validate:"required,url"`
	Token      string `validate:"required" sensitive:"true"`
	TimeoutSec int    `validate:"gt=0"`
}

type MailConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"required"`
	Username string
	Password string `sensitive:"true"`
	From     string `validate:"required"`
}

type VerificationConfig struct {
	CodeExpirationSec int `validate:"gt=0"`
}

type OlricConfig struct {
	DiscoveryMode string
}

type TechnicalParameters struct {
	ListenAddress  string `validate:"required"`
	LogLevel       string
	LogFile        string
	BackendVersion string
}
