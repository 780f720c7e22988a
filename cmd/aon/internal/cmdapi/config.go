package cmdapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config is the content of an .aon.yaml file. Every key mirrors a flag;
// flags given on the command line win.
type Config struct {
	Root     string `yaml:"root"`
	Order    string `yaml:"order"`
	Qualify  *bool  `yaml:"qualify"`
	Indent   *bool  `yaml:"indent"`
	LogLevel string `yaml:"log_level"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// LoadConfig reads a config file. A missing file is an error only when
// explicit is set; otherwise it yields a nil Config.
func LoadConfig(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML config data. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// values maps flag names to the values set in the file.
func (c *Config) values() map[string]string {
	m := make(map[string]string)
	set := func(name, v string) {
		if v != "" {
			m[name] = v
		}
	}
	set(flagRoot, c.Root)
	set(flagOrder, c.Order)
	set(flagLogLevel, c.LogLevel)
	set(flagFrom, c.From)
	set(flagTo, c.To)
	if c.Qualify != nil {
		m[flagQualify] = strconv.FormatBool(*c.Qualify)
	}
	if c.Indent != nil {
		m[flagIndent] = strconv.FormatBool(*c.Indent)
	}
	return m
}

// Apply sets every flag of set that the user did not pass and the config
// defines. Keys naming flags the command does not have are ignored.
func (c *Config) Apply(set *pflag.FlagSet) error {
	if c == nil {
		return nil
	}
	for name, v := range c.values() {
		f := set.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := set.Set(name, v); err != nil {
			return fmt.Errorf("config %s: %w", name, err)
		}
	}
	return nil
}
