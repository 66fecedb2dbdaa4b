package katachi

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config configures a mining run. The zero value is not valid; start from DefaultConfig.
type Config struct {
	InputDir  string `yaml:"input_dir"`
	Glob      string `yaml:"glob"`      // file name pattern of the records
	Recursive bool   `yaml:"recursive"` // also look in subdirectories
	Workers   int    `yaml:"workers"`   // records processed at once
	BoardSize int    `yaml:"board_size"`
	Top       int    `yaml:"top"` // patterns in the report

	// outputs. An empty path disables the output
	Report    string `yaml:"report"`
	Histogram string `yaml:"histogram"`
	Bins      int    `yaml:"bins"`
	Gallery   string `yaml:"gallery"`
	Graph     string `yaml:"graph"`
	Stats     string `yaml:"stats"`

	SkipDuplicates bool `yaml:"skip_duplicates"`
	Verbose        bool `yaml:"verbose"`
}

func DefaultConfig() Config {
	return Config{
		InputDir:  "sgf_files",
		Glob:      "*.sgf",
		Workers:   runtime.NumCPU(),
		BoardSize: 19,
		Top:       DefaultTop,
		Report:    "patterns.txt",
		Histogram: "moves_distribution.png",
		Bins:      20,
	}
}

func (conf Config) IsValid() bool {
	return conf.InputDir != "" &&
		conf.Glob != "" &&
		conf.Workers >= 1 &&
		conf.BoardSize >= 5 && conf.BoardSize <= 52 &&
		conf.Top >= 1 &&
		conf.Bins >= 1
}

// LoadConfig reads a YAML file over the defaults. Fields missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return conf, errors.Wrapf(err, "Unable to read config %q", path)
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, errors.Wrapf(err, "Unable to parse config %q", path)
	}
	return conf, nil
}

// OutputEncoder encodes ranked patterns as whatever.
//
// An example OutputEncoder is the GIF gallery. Another example would be a logger.
type OutputEncoder interface {
	Encode(e Entry) error
	Flush() error
}
