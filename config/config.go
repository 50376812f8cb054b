package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded when present and no explicit env file is given
const DefaultEnvFile = ".env"

// Config holds the environment-level defaults for every command.
// Command-line flags override these values.
type Config struct {
	FrameRate     int      `env:"VOCPREP_FRAME_RATE"     envDefault:"12"`
	Workers       int      `env:"VOCPREP_WORKERS"        envDefault:"1"`
	VideoPatterns []string `env:"VOCPREP_VIDEO_PATTERNS" envDefault:"*.mp4,*.webm,*.mov,*.flv,*.mkv,*.avi,*.wmv,*.mpg"`
	JPEGQuality   int      `env:"VOCPREP_JPEG_QUALITY"   envDefault:"95"`

	AnnoDir      string   `env:"VOCPREP_ANNO_DIR"      envDefault:"Annotations"`
	AnnoPatterns []string `env:"VOCPREP_ANNO_PATTERNS" envDefault:"*.xml"`
	ImageDir     string   `env:"VOCPREP_IMAGE_DIR"     envDefault:"JPEGImages"`
	ImageExt     string   `env:"VOCPREP_IMAGE_EXT"     envDefault:".jpg"`
	SplitRatio   float64  `env:"VOCPREP_SPLIT_RATIO"   envDefault:"0.8"`
	JoinFile     string   `env:"VOCPREP_JOIN_FILE"     envDefault:"join_trainval.txt"`

	// Seed < 0 means the shuffles are randomly seeded.
	Seed int64 `env:"VOCPREP_SEED" envDefault:"-1"`

	LogLevel  string `env:"VOCPREP_LOG_LEVEL"  envDefault:"warn"`
	AssumeYes bool   `env:"VOCPREP_ASSUME_YES" envDefault:"false"`
}

// Load reads envFile (or .env when envFile is empty and the file exists)
// into the process environment and parses the result into a Config.
func Load(envFile string) (*Config, error) {
	switch {
	case envFile != "":
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	default:
		if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading env file %s: %w", DefaultEnvFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have no sensible fallback
func (c *Config) Validate() error {
	if c.FrameRate < 1 {
		return fmt.Errorf("VOCPREP_FRAME_RATE must be >= 1, got %d", c.FrameRate)
	}
	if c.SplitRatio <= 0 || c.SplitRatio >= 1 {
		return fmt.Errorf("VOCPREP_SPLIT_RATIO must be in (0,1), got %g", c.SplitRatio)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("VOCPREP_JPEG_QUALITY must be in [1,100], got %d", c.JPEGQuality)
	}
	if !strings.HasPrefix(c.ImageExt, ".") {
		c.ImageExt = "." + c.ImageExt
	}
	return nil
}

// Vars exposes the config as kong interpolation variables
func (c *Config) Vars() map[string]string {
	return map[string]string{
		"frame_rate":     strconv.Itoa(c.FrameRate),
		"workers":        strconv.Itoa(c.Workers),
		"video_patterns": strings.Join(c.VideoPatterns, ","),
		"jpeg_quality":   strconv.Itoa(c.JPEGQuality),
		"anno_dir":       c.AnnoDir,
		"anno_patterns":  strings.Join(c.AnnoPatterns, ","),
		"image_dir":      c.ImageDir,
		"image_ext":      c.ImageExt,
		"split_ratio":    strconv.FormatFloat(c.SplitRatio, 'f', -1, 64),
		"join_file":      c.JoinFile,
		"seed":           strconv.FormatInt(c.Seed, 10),
		"log_level":      c.LogLevel,
		"assume_yes":     strconv.FormatBool(c.AssumeYes),
	}
}

// LookupEnvFile scans args for --env-file before the CLI is parsed, since the
// config has to exist to supply flag defaults.
func LookupEnvFile(args []string) string {
	for i, arg := range args {
		if v, ok := strings.CutPrefix(arg, "--env-file="); ok {
			return v
		}
		if arg == "--env-file" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("VOCPREP_ENV_FILE")
}
