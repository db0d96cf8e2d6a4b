/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Fetch configures how artifact-fetch commands are rendered and executed.
type Fetch struct {
	// Container is the name of the runtime container the fetch commands
	// target.
	Container string `mapstructure:"container"`
	// Shell is the interpreter used to execute the queued commands.
	Shell string `mapstructure:"shell"`
}

// Config carries the tool-wide defaults. Command-line flags override any
// value loaded here.
type Config struct {
	// Wallets is the root directory holding per-organization wallets.
	Wallets string `mapstructure:"wallets"`
	// Profiles is the directory gateway connection profiles are written to.
	Profiles string `mapstructure:"profiles"`
	// MSP is the root directory per-identity MSP trees are built under.
	MSP   string `mapstructure:"msp"`
	Fetch Fetch  `mapstructure:"fetch"`
}

// Load reads the configuration: built-in defaults, then the optional config
// file, then WEFT_* environment variables. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("wallets", "_wallets")
	v.SetDefault("profiles", "_gateways")
	v.SetDefault("msp", "_msp")
	v.SetDefault("fetch.container", "microfab")
	v.SetDefault("fetch.shell", "sh")

	v.SetEnvPrefix("WEFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(path) != 0 {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "could not read config file %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal configuration")
	}
	return &c, nil
}
