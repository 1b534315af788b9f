// Package config reads service settings from an optional .env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/oa-drill/evaluator/internal/lang"
	"github.com/oa-drill/evaluator/internal/xdg"
)

const appName = "oa-evaluator"

type Config struct {
	WorkDir        string
	CaseTimeout    time.Duration
	CompileTimeout time.Duration
	OutputLimit    int64
	MaxConcurrent  int

	ProblemsFile     string
	ProblemsS3Bucket string
	ProblemsS3Prefix string
	AWSRegion        string

	NatsURL        string
	NatsSubject    string
	SQSRequestURL  string
	SQSResponseURL string
	HTTPAddr       string

	Toolchain lang.Toolchain
	LogLevel  string
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	dirs := xdg.New()
	return &Config{
		WorkDir:        filepath.Join(dirs.AppRuntimeDir(appName), "workspaces"),
		CaseTimeout:    3 * time.Second,
		CompileTimeout: 60 * time.Second,
		OutputLimit:    64 * 1024,
		MaxConcurrent:  runtime.NumCPU(),
		ProblemsFile:   filepath.Join(dirs.AppCacheDir(appName), "problems.json"),
		AWSRegion:      "eu-central-1",
		NatsURL:        nats.DefaultURL,
		NatsSubject:    "eval.requests",
		HTTPAddr:       ":8080",
		Toolchain:      lang.DefaultToolchain(),
		LogLevel:       "info",
	}
}

// Load reads envFile into the environment when it exists, without
// overriding variables already set, and then builds the config from the
// environment. An empty envFile means ".env".
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds the config from lookup, starting from Default.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	c := Default()
	r := reader{lookup: lookup}

	r.str("EVAL_WORK_DIR", &c.WorkDir)
	r.duration("EVAL_CASE_TIMEOUT", &c.CaseTimeout)
	r.duration("EVAL_COMPILE_TIMEOUT", &c.CompileTimeout)
	r.size("EVAL_OUTPUT_LIMIT", &c.OutputLimit)
	r.count("EVAL_MAX_CONCURRENT", &c.MaxConcurrent)

	r.str("EVAL_PROBLEMS_FILE", &c.ProblemsFile)
	r.str("EVAL_PROBLEMS_S3_BUCKET", &c.ProblemsS3Bucket)
	r.str("EVAL_PROBLEMS_S3_PREFIX", &c.ProblemsS3Prefix)
	r.str("AWS_REGION", &c.AWSRegion)

	r.str("NATS_URL", &c.NatsURL)
	r.str("NATS_SUBJECT", &c.NatsSubject)
	r.str("SQS_REQUEST_URL", &c.SQSRequestURL)
	r.str("SQS_RESPONSE_URL", &c.SQSResponseURL)
	r.str("HTTP_ADDR", &c.HTTPAddr)

	r.str("CXX", &c.Toolchain.CXX)
	r.str("CC", &c.Toolchain.CC)
	r.str("JAVAC", &c.Toolchain.Javac)
	r.str("JAVA", &c.Toolchain.Java)
	r.str("PYTHON", &c.Toolchain.Python)
	r.str("LOG_LEVEL", &c.LogLevel)
	c.Toolchain.CompileTimeout = c.CompileTimeout

	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.WorkDir == "" {
		errs = append(errs, errors.New("EVAL_WORK_DIR must not be empty"))
	}
	if c.CaseTimeout <= 0 {
		errs = append(errs, errors.New("EVAL_CASE_TIMEOUT must be positive"))
	}
	if c.CompileTimeout <= 0 {
		errs = append(errs, errors.New("EVAL_COMPILE_TIMEOUT must be positive"))
	}
	if c.OutputLimit <= 0 {
		errs = append(errs, errors.New("EVAL_OUTPUT_LIMIT must be positive"))
	}
	if c.MaxConcurrent <= 0 {
		errs = append(errs, errors.New("EVAL_MAX_CONCURRENT must be positive"))
	}
	return errors.Join(errs...)
}

type reader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (r *reader) get(key string) (string, bool) {
	v, ok := r.lookup(key)
	return v, ok && v != ""
}

func (r *reader) str(key string, dst *string) {
	if v, ok := r.get(key); ok {
		*dst = v
	}
}

func (r *reader) duration(key string, dst *time.Duration) {
	v, ok := r.get(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("invalid %s: %w", key, err))
		return
	}
	*dst = d
}

func (r *reader) size(key string, dst *int64) {
	v, ok := r.get(key)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("invalid %s: %w", key, err))
		return
	}
	*dst = n
}

func (r *reader) count(key string, dst *int) {
	n := int64(*dst)
	r.size(key, &n)
	*dst = int(n)
}
