package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/stackb/php-namespace-resolver/pkg/builtins"
	"github.com/stackb/php-namespace-resolver/pkg/procutil"
	"github.com/stackb/php-namespace-resolver/pkg/psr4"
	"github.com/stackb/php-namespace-resolver/pkg/sorter"
)

// FileName is the config file looked up in the workspace root.
const FileName = ".nsresolver.yaml"

// Config holds every setting of the resolver.
type Config struct {
	// Exclude holds glob patterns of workspace paths never searched for
	// class files.
	Exclude []string `yaml:"exclude"`
	// Extension is the suffix of class files.
	Extension string `yaml:"extension" validate:"required,startswith=."`
	// LeadingSeparator makes expand write "\Foo\Bar".
	LeadingSeparator           bool `yaml:"leadingSeparator"`
	ForceReplaceSimilarImports bool `yaml:"forceReplaceSimilarImports"`
	// ShowMessageOnStatusBar selects the short notification surface.
	ShowMessageOnStatusBar bool               `yaml:"showMessageOnStatusBar"`
	Sort                   SortConfig         `yaml:"sort"`
	Namespace              psr4.Config        `yaml:"namespace"`
	PHP                    PHPConfig          `yaml:"php"`
	CheckForNamespaces     CheckForNamespaces `yaml:"checkForNamespaces"`
}

type SortConfig struct {
	// Auto sorts after every import.
	Auto bool `yaml:"auto"`
	// OnSave sorts files written while watching.
	OnSave        bool `yaml:"onSave"`
	sorter.Config `yaml:",inline"`
}

type PHPConfig struct {
	Command  string   `yaml:"command"`
	BuiltIns []string `yaml:"builtIns" validate:"dive,required"`
}

type CheckForNamespaces struct {
	ClassMapFileGlob string   `yaml:"classMapFileGlob"`
	Rg               RgConfig `yaml:"rg"`
}

type RgConfig struct {
	Command      string   `yaml:"command"`
	ExcludeDirs  []string `yaml:"excludeDirs"`
	ExcludeFiles []string `yaml:"excludeFiles"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Exclude:          []string{"**/node_modules/**"},
		Extension:        ".php",
		LeadingSeparator: true,
		Sort: SortConfig{
			Config: sorter.DefaultConfig,
		},
		PHP: PHPConfig{
			Command:  "php",
			BuiltIns: append([]string(nil), builtins.DefaultMethods...),
		},
		CheckForNamespaces: CheckForNamespaces{
			ClassMapFileGlob: "vendor/composer/autoload_classmap.php",
			Rg: RgConfig{
				Command:      "rg",
				ExcludeDirs:  []string{"vendor", "node_modules"},
				ExcludeFiles: []string{"*.blade.php"},
			},
		},
	}
}

// Load reads the config of a workspace.  The NSRESOLVER_CONFIG environment
// variable names an explicit file; otherwise FileName in root is read when
// present.
func Load(root string) (*Config, string, error) {
	path := filepath.Join(root, FileName)
	explicit := false
	if val, ok := procutil.LookupEnv(procutil.NSRESOLVER_CONFIG); ok && val != "" {
		path = val
		explicit = true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), "", nil
		}
		return nil, "", fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return cfg, path, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing YAML config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the structural constraints of the settings.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			fe := errs[0]
			return &Error{
				Field:  strings.TrimPrefix(fe.Namespace(), "Config."),
				Reason: fmt.Sprintf("failed %q validation (value %v)", fe.Tag(), fe.Value()),
			}
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// RequireRuntime checks the settings needed to enumerate built-in types.
func (c *Config) RequireRuntime() error {
	if strings.TrimSpace(c.PHP.Command) == "" {
		return &Error{Field: "php.command", Reason: "required"}
	}
	return nil
}

// RequireNamespaceCheck checks the settings needed to search the workspace
// for unknown names.
func (c *Config) RequireNamespaceCheck() error {
	if err := c.RequireRuntime(); err != nil {
		return err
	}
	switch {
	case c.CheckForNamespaces.ClassMapFileGlob == "":
		return &Error{Field: "checkForNamespaces.classMapFileGlob", Reason: "required"}
	case c.CheckForNamespaces.Rg.Command == "":
		return &Error{Field: "checkForNamespaces.rg.command", Reason: "required"}
	case len(c.CheckForNamespaces.Rg.ExcludeDirs) == 0:
		return &Error{Field: "checkForNamespaces.rg.excludeDirs", Reason: "required"}
	case len(c.CheckForNamespaces.Rg.ExcludeFiles) == 0:
		return &Error{Field: "checkForNamespaces.rg.excludeFiles", Reason: "required"}
	}
	return nil
}
