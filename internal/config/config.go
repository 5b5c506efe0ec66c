package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	gconfig "github.com/gookit/config/v2"
	gyaml "github.com/gookit/config/v2/yaml"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/tidwall/jsonc"

	"github.com/pixel-money/stackctl/internal/model"
)

// Candidate config file names, probed in order in the working
// directory. The first one that exists wins.
var candidateFiles = []string{
	"stackctl.yaml",
	"stackctl.yml",
	"stackctl.jsonc",
	"stackctl.json",
}

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "STACKCTL_CONFIG"

// Config is the full stackctl configuration.
type Config struct {
	// Project is the compose project name (-p). Container, network,
	// and volume names are prefixed with it by docker compose.
	Project string `mapstructure:"project" json:"project"`

	// ComposeFiles lists the compose YAML files passed via -f,
	// merged in order.
	ComposeFiles []string `mapstructure:"compose_files" json:"composeFiles"`

	// Wait is the settling pause between "up -d" and the status
	// table. It is cosmetic — services keep initializing on their
	// own schedule — and is not a readiness check.
	Wait time.Duration `mapstructure:"wait" json:"wait"`

	// Test configures the external test runner invocation.
	Test TestRunner `mapstructure:"test" json:"test"`

	// Endpoints is the list of URLs (and default credentials) printed
	// after a successful deploy.
	Endpoints []model.Endpoint `mapstructure:"endpoints" json:"endpoints"`
}

// TestRunner describes how "stackctl test" invokes the external test
// runner. The runner is a pre-existing tool (pytest for the Pixel
// Money stack); stackctl only launches it and propagates its exit
// status.
type TestRunner struct {
	// Command is the runner binary name, resolved via PATH.
	Command string `mapstructure:"command" json:"command"`

	// Args are passed before the directory (e.g. the verbosity flag).
	Args []string `mapstructure:"args" json:"args"`

	// Dir is the test directory handed to the runner.
	Dir string `mapstructure:"dir" json:"dir"`
}

// Default returns the built-in configuration matching the original
// deployment scripts: the Pixel Money compose project, a 15 second
// wait, pytest -v over tests/, and the stack's service URL banner.
func Default() *Config {
	return &Config{
		Project:      "pixel-money",
		ComposeFiles: []string{"docker-compose.yml"},
		Wait:         15 * time.Second,
		Test: TestRunner{
			Command: "pytest",
			Args:    []string{"-v"},
			Dir:     "tests",
		},
		Endpoints: []model.Endpoint{
			{Name: "API Gateway", URL: "http://localhost:8080"},
			{Name: "API docs (Swagger)", URL: "http://localhost:8080/docs"},
			{Name: "Grafana", URL: "http://localhost:3000", Credentials: "admin / admin"},
			{Name: "Prometheus", URL: "http://localhost:9090"},
		},
	}
}

// Load reads the stackctl configuration. Resolution order:
//
//  1. STACKCTL_CONFIG environment variable, if set (missing file is
//     an error — an explicit path should never be silently ignored)
//  2. the first candidate file found in dir
//  3. built-in defaults when no file exists
//
// A file only needs to specify the fields it overrides; everything
// else keeps its default.
func Load(dir string) (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return loadFile(path)
	}

	for _, name := range candidateFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return loadFile(path)
		}
	}

	return Default(), nil
}

// loadFile dispatches on the file extension to the YAML or JSONC
// decoder and validates the result.
func loadFile(path string) (*Config, error) {
	cfg := Default()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = loadYAML(path, cfg)
	case ".jsonc", ".json":
		err = loadJSONC(path, cfg)
	default:
		err = errors.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			"failed to load config "+path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			"invalid config "+path, err)
	}

	return cfg, nil
}

// loadYAML binds a YAML config file onto cfg using gookit/config.
// The duration decode hook lets the file express waits as "15s" or
// "1m" instead of nanosecond integers.
func loadYAML(path string, cfg *Config) error {
	c := gconfig.NewWithOptions("stackctl",
		gconfig.ParseEnv,
		gconfig.Readonly,
		func(opts *gconfig.Options) {
			opts.DecoderConfig = &mapstructure.DecoderConfig{
				TagName:          "mapstructure",
				WeaklyTypedInput: true,
				// ZeroFields makes a list in the file replace the
				// default list instead of merging element-wise.
				ZeroFields: true,
				DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
			}
		},
	)
	c.AddDriver(gyaml.Driver)

	if err := c.LoadFiles(path); err != nil {
		return errors.Wrap(err, "failed to read config")
	}

	if err := c.BindStruct("", cfg); err != nil {
		return errors.Wrap(err, "config binding failed")
	}

	return nil
}

// loadJSONC decodes a JSON-with-comments config file onto cfg.
// jsonc.ToJSON strips comments and trailing commas in place, after
// which the document is plain JSON. The decoded map goes through
// mapstructure so durations get the same "15s" string handling as
// the YAML path.
func loadJSONC(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config")
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return errors.Wrap(err, "config is not valid JSONC")
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		// Same override semantics as the YAML path: lists in the file
		// replace the default lists.
		ZeroFields: true,
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     cfg,
	})
	if err != nil {
		return errors.Wrap(err, "decoder setup failed")
	}

	if err := dec.Decode(raw); err != nil {
		return errors.Wrap(err, "config binding failed")
	}

	return nil
}

// validate verifies the loaded config. Only structural problems are
// rejected; whether the compose files exist is checked later, at the
// point of use, so that "stackctl test" works without compose files.
func (c *Config) validate() error {
	if c.Project == "" {
		return errors.New("project is required")
	}
	if len(c.ComposeFiles) == 0 {
		return errors.New("compose_files must list at least one file")
	}
	if c.Wait < 0 {
		return errors.New("wait must not be negative")
	}
	if c.Test.Command == "" {
		return errors.New("test.command is required")
	}
	if c.Test.Dir == "" {
		return errors.New("test.dir is required")
	}
	for i, ep := range c.Endpoints {
		if ep.Name == "" || ep.URL == "" {
			return errors.Errorf("endpoints[%d] needs both name and url", i)
		}
	}
	return nil
}
