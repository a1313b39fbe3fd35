package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalid marks configuration that cannot be used: unreadable or schema-invalid
// files, or values that fail validation.
var ErrInvalid = errors.New("invalid configuration")

const (
	DefaultRoot        = "demo_all"
	DefaultScript      = "script.js"
	DefaultAssetRoot   = "physics_gpt_outputs_with_force"
	DefaultExtension   = ".mp4"
	DefaultStartMarker = "// === VIDEO LIST START (auto-generated) ==="
	DefaultEndMarker   = "// === VIDEO LIST END ==="
	DefaultIndent      = "  "
	DefaultPlaceholder = "// (no videos found)"

	// ConfigName is the project config file name, looked up without extension.
	ConfigName = ".vidlist"
	// EnvPrefix prefixes every environment override, e.g. VIDLIST_ROOT.
	EnvPrefix = "VIDLIST"
)

// Config holds all configuration for vidlist
type Config struct {
	Root         string        `mapstructure:"root"`
	Script       string        `mapstructure:"script"`
	IDFile       string        `mapstructure:"id_file"`
	Models       []string      `mapstructure:"models"`
	PublicPrefix string        `mapstructure:"public_prefix"`
	AssetRoot    string        `mapstructure:"asset_root"`
	Extension    string        `mapstructure:"extension"`
	Exclude      []string      `mapstructure:"exclude"`
	Markers      MarkersConfig `mapstructure:"markers"`
	Output       OutputConfig  `mapstructure:"output"`

	// File is the config file that was read, empty when only defaults applied.
	File string `mapstructure:"-"`
}

// MarkersConfig holds the two comments delimiting the generated region
type MarkersConfig struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// OutputConfig controls how generated lines are laid out
type OutputConfig struct {
	Indent      string `mapstructure:"indent"`
	Placeholder string `mapstructure:"placeholder"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"root":          "root",
	"script":        "script",
	"id-file":       "id_file",
	"models":        "models",
	"public-prefix": "public_prefix",
	"asset-root":    "asset_root",
	"ext":           "extension",
	"exclude":       "exclude",
}

// LoadOptions selects where configuration is read from
type LoadOptions struct {
	// ConfigFile is an explicit config path; when empty, Dir is searched for .vidlist.<ext> in any format viper reads (yaml, json, toml, ...).
	ConfigFile string
	// Dir is the directory searched for the project config, "." when empty.
	Dir string
	// Flags are bound so that explicitly set flags take precedence over everything else.
	Flags *pflag.FlagSet
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root", DefaultRoot)
	v.SetDefault("script", DefaultScript)
	v.SetDefault("id_file", "")
	v.SetDefault("models", []string{})
	v.SetDefault("public_prefix", "")
	v.SetDefault("asset_root", DefaultAssetRoot)
	v.SetDefault("extension", DefaultExtension)
	v.SetDefault("exclude", []string{})
	v.SetDefault("markers.start", DefaultStartMarker)
	v.SetDefault("markers.end", DefaultEndMarker)
	v.SetDefault("output.indent", DefaultIndent)
	v.SetDefault("output.placeholder", DefaultPlaceholder)
}

// Load resolves configuration with precedence: set flags > VIDLIST_* env > config file > defaults
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := readConfigFile(v, opts); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, opts.Flags); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: error unmarshaling config: %v", ErrInvalid, err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfigFile(v *viper.Viper, opts LoadOptions) error {
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		v.SetConfigName(ConfigName)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("%w: reading %s: %v", ErrInvalid, describeConfig(v, opts), err)
	}

	// Decode the file on its own so defaults cannot mask unknown or mistyped keys.
	file := viper.New()
	file.SetConfigFile(v.ConfigFileUsed())
	if err := file.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrInvalid, v.ConfigFileUsed(), err)
	}
	if err := ValidateSettings(file.AllSettings()); err != nil {
		return fmt.Errorf("%s: %w", v.ConfigFileUsed(), err)
	}
	return nil
}

func describeConfig(v *viper.Viper, opts LoadOptions) string {
	if used := v.ConfigFileUsed(); used != "" {
		return used
	}
	if opts.ConfigFile != "" {
		return opts.ConfigFile
	}
	return ConfigName
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %v", name, err)
		}
	}
	return nil
}

// Validate checks values that the schema cannot see, such as flag and env overrides
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Root) == "":
		return fmt.Errorf("%w: root must not be empty", ErrInvalid)
	case strings.TrimSpace(c.Script) == "":
		return fmt.Errorf("%w: script must not be empty", ErrInvalid)
	case !validExtension(c.Extension):
		return fmt.Errorf("%w: extension must look like \".mp4\", got %q", ErrInvalid, c.Extension)
	case c.Markers.Start == "" || c.Markers.End == "":
		return fmt.Errorf("%w: markers must not be empty", ErrInvalid)
	case c.Markers.Start == c.Markers.End:
		return fmt.Errorf("%w: start and end markers must differ", ErrInvalid)
	case strings.Trim(c.Output.Indent, " \t") != "":
		return fmt.Errorf("%w: output.indent may only contain spaces and tabs", ErrInvalid)
	}
	return nil
}

// EffectivePublicPrefix returns the prefix used in src fields: the configured
// public_prefix, or the root in forward-slash form.
func (c *Config) EffectivePublicPrefix() string {
	if c.PublicPrefix != "" {
		return c.PublicPrefix
	}
	return filepath.ToSlash(filepath.Clean(c.Root))
}

// validExtension accepts a dot followed by letters and digits, which keeps the
// extension free of glob metacharacters.
func validExtension(ext string) bool {
	if len(ext) < 2 || ext[0] != '.' {
		return false
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
