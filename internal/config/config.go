package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/babarot/saferm/internal/env"
	"github.com/babarot/saferm/internal/utils/duration"
	"github.com/go-playground/validator/v10"
	"github.com/k0kubun/pp/v3"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

var validate *validator.Validate

type Config struct {
	Core    Core    `yaml:"core"`
	Logging Logging `yaml:"logging"`
	List    List    `yaml:"list"`
}

type Core struct {
	// TrashDir is the directory holding the trash root and the metadata file.
	// Empty means SAFERM_HOME.
	TrashDir         string `yaml:"trash_dir" validate:"omitempty,validDirPath"`
	DefaultRetention string `yaml:"default_retention" validate:"required,validRetention"`
	Verbose          bool   `yaml:"verbose"`
}

type Logging struct {
	Enabled  bool     `yaml:"enabled"`
	Level    string   `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format   string   `yaml:"format" validate:"omitempty,oneof=text json logfmt"`
	Rotation Rotation `yaml:"rotation"`
}

type Rotation struct {
	MaxSize  string `yaml:"max_size" validate:"required,validSize"`
	MaxFiles int    `yaml:"max_files" validate:"min=0"`
}

type List struct {
	Include IncludeConfig `yaml:"include"`
	Exclude ExcludeConfig `yaml:"exclude"`
}

type IncludeConfig struct {
	Period int `yaml:"within_days" validate:"min=0"`
}

type ExcludeConfig struct {
	Files    []string   `yaml:"files"`
	Patterns []string   `yaml:"patterns"`
	Globs    []string   `yaml:"globs"`
	Size     SizeConfig `yaml:"size"`
}

type SizeConfig struct {
	Min string `yaml:"min" validate:"omitempty,validSize"`
	Max string `yaml:"max" validate:"omitempty,validSize"`
}

// String dumps c for debug logs
func (c Config) String() string {
	p := pp.New()
	p.SetColoringEnabled(false)
	return p.Sprint(c)
}

// MaxRetentionDays caps any retention, about a hundred years
const MaxRetentionDays = 36500

// RetentionDays converts DefaultRetention into whole days
func (c Core) RetentionDays() (int, error) {
	days, err := duration.ParseDays(c.DefaultRetention)
	if err != nil {
		return 0, err
	}
	if days > MaxRetentionDays {
		return 0, fmt.Errorf("retention of %d days exceeds %d", days, MaxRetentionDays)
	}
	return days, nil
}

// HomeDir returns the expanded trash home, falling back to SAFERM_HOME
func (c Core) HomeDir() (string, error) {
	if c.TrashDir == "" {
		return env.SAFERM_HOME, nil
	}
	return expandPath(c.TrashDir)
}

type configError struct {
	configPath string
	parser     parser
	err        error
}

type parser struct{}

func (p parser) getDefaultConfigContents() string {
	content, _ := yaml.Marshal(NewDefaultConfig())
	return string(content)
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't find the "%s" config file.
		Please try again after creating it or specifying a valid config path.
		The recommended config path is %s (default).
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		env.SAFERM_CONFIG_PATH,
		e.parser.getDefaultConfigContents(),
		indent.String(e.err.Error(), 2),
	)
}

func (p parser) createConfigFile(path string) error {
	if err := p.ensureDirExists(filepath.Dir(path)); err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Warn("creating config file as it does not exist", "config-file", path)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := f.WriteString(p.getDefaultConfigContents()); err != nil {
			return err
		}
	}

	return nil
}

func (p parser) ensureDirExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		slog.Warn("creating directory as it does not exist", "dir", dirPath)
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return err
		}
	}
	return nil
}

func (p parser) ensureConfigFile() (string, error) {
	path := env.SAFERM_CONFIG_PATH
	if err := p.createConfigFile(path); err != nil {
		return "", configError{
			configPath: path,
			parser:     p,
			err:        err,
		}
	}
	return path, nil
}

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e parsingError) Unwrap() error {
	return e.err
}

func (p parser) readConfigFile(path string) (Config, error) {
	// keys missing from the file keep their default values
	cfg := *NewDefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{
			configPath: path,
			parser:     p,
			err:        err,
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return cfg, err
		}
		for _, err := range verrs {
			return cfg, fmt.Errorf("validation error: Field %s, %q is invalid", err.Field(), err.Value())
		}
	}
	return cfg, nil
}

func initParser() parser {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validateSize)
	_ = validate.RegisterValidation("validRetention", validateRetention)
	_ = validate.RegisterValidation("validDirPath", validateDirPath)

	return parser{}
}

// Parse reads the config file at path. An empty path means the default
// location, which is created with default contents when missing.
func Parse(path string) (Config, error) {
	parser := initParser()

	var configPath string
	if path == "" {
		p, err := parser.ensureConfigFile()
		if err != nil {
			return *NewDefaultConfig(), parsingError{err: err}
		}
		configPath = p
	} else {
		configPath = path
	}
	slog.Debug("config file found", "config-file", configPath)

	cfg, err := parser.readConfigFile(configPath)
	if err != nil {
		return cfg, parsingError{err: err}
	}

	return cfg, nil
}
