package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/compozy/changelog-range/internal/domain"
	"github.com/go-git/go-git/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

var (
	classicPAT     = regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	personalToken  = regexp.MustCompile(`^ghp_[a-zA-Z0-9]{36}$`)
	fineGrainedPAT = regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]{82}$`)
	appToken       = regexp.MustCompile(`^ghs_[a-zA-Z0-9]{36}$`)
	oauthToken     = regexp.MustCompile(`^gho_[a-zA-Z0-9]{36}$`)
	validName      = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
)

type Config struct {
	Mode         string        `mapstructure:"mode"`
	ChangelogDir string        `mapstructure:"changelog_dir"`
	CliffCommand string        `mapstructure:"cliff_command"`
	CliffTimeout time.Duration `mapstructure:"cliff_timeout"`
	RepoPath     string        `mapstructure:"repo_path"`
	FetchTags    bool          `mapstructure:"fetch_tags"`
	LogLevel     string        `mapstructure:"log_level"`
	GithubToken  string        `mapstructure:"github_token"`
	GithubOwner  string        `mapstructure:"github_owner"`
	GithubRepo   string        `mapstructure:"github_repo"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Mode:         string(domain.ModeStrict),
		ChangelogDir: "CHANGELOG",
		CliffCommand: "uv run git-cliff",
		RepoPath:     ".",
		LogLevel:     "info",
	}
}

// CliffArgs splits the configured changelog command into program and arguments.
func (c *Config) CliffArgs() []string {
	return strings.Fields(c.CliffCommand)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := domain.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.ChangelogDir == "" {
		return fmt.Errorf("changelog_dir cannot be empty")
	}
	if strings.Contains(c.ChangelogDir, "..") {
		return fmt.Errorf("changelog_dir contains invalid path traversal")
	}
	if len(c.CliffArgs()) == 0 {
		return fmt.Errorf("cliff_command cannot be empty")
	}
	if c.CliffTimeout < 0 {
		return fmt.Errorf("cliff_timeout cannot be negative")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// ValidateForGitHubOperations validates that GitHub settings are present for publishing
func (c *Config) ValidateForGitHubOperations() error {
	if c.GithubToken == "" {
		return fmt.Errorf("github_token is required for GitHub operations")
	}
	if err := ValidateGitHubToken(c.GithubToken); err != nil {
		return fmt.Errorf("invalid github_token: %w", err)
	}
	if err := ValidateGitHubOwnerRepo(c.GithubOwner, c.GithubRepo); err != nil {
		return fmt.Errorf("invalid github configuration: %w", err)
	}
	return c.Validate()
}

// ValidateGitHubToken validates GitHub token format (exported for reuse)
func ValidateGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	if len(token) < 40 {
		return fmt.Errorf("token too short: expected at least 40 characters")
	}
	if !classicPAT.MatchString(token) &&
		!personalToken.MatchString(token) &&
		!fineGrainedPAT.MatchString(token) &&
		!appToken.MatchString(token) &&
		!oauthToken.MatchString(token) {
		return fmt.Errorf("invalid token format")
	}
	return nil
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	if !validName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !validName.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".changelog-range")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	// Configure environment variables
	v.SetEnvPrefix("CHANGELOG_RANGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// BindEnv allows multiple env vars - it will check them in order
	bindings := map[string][]string{
		"github_token":  {"GITHUB_TOKEN", "CHANGELOG_RANGE_GITHUB_TOKEN"},
		"github_owner":  {"GITHUB_OWNER", "CHANGELOG_RANGE_GITHUB_OWNER"},
		"github_repo":   {"GITHUB_REPO", "CHANGELOG_RANGE_GITHUB_REPO"},
		"cliff_command": {"CLIFF_COMMAND", "CHANGELOG_RANGE_CLIFF_COMMAND"},
		"log_level":     {"LOG_LEVEL", "CHANGELOG_RANGE_LOG_LEVEL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	defaults := DefaultConfig()
	v.SetDefault("mode", defaults.Mode)
	v.SetDefault("changelog_dir", defaults.ChangelogDir)
	v.SetDefault("cliff_command", defaults.CliffCommand)
	v.SetDefault("cliff_timeout", defaults.CliffTimeout)
	v.SetDefault("repo_path", defaults.RepoPath)
	v.SetDefault("fetch_tags", defaults.FetchTags)
	v.SetDefault("log_level", defaults.LogLevel)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := populateRepositoryDefaults(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// populateRepositoryDefaults fills GitHub owner/repo from the Actions environment,
// falling back to the origin remote of the working repository.
func populateRepositoryDefaults(cfg *Config) error {
	if cfg.GithubOwner == "" {
		cfg.GithubOwner = os.Getenv("GITHUB_REPOSITORY_OWNER")
	}
	if cfg.GithubRepo == "" {
		cfg.GithubRepo = os.Getenv("GITHUB_REPOSITORY_NAME")
	}
	if slug := os.Getenv("GITHUB_REPOSITORY"); slug != "" {
		if owner, repo, ok := strings.Cut(slug, "/"); ok {
			if cfg.GithubOwner == "" {
				cfg.GithubOwner = owner
			}
			if cfg.GithubRepo == "" {
				cfg.GithubRepo = repo
			}
		}
	}
	if cfg.GithubOwner != "" && cfg.GithubRepo != "" {
		return nil
	}
	path := cfg.RepoPath
	if path == "" {
		path = "."
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		// Not inside a repository: publishing will report the missing settings
		return nil
	}
	remote, err := repo.Remote("origin")
	if err != nil || len(remote.Config().URLs) == 0 {
		return nil
	}
	owner, name, err := parseGitRemoteURL(remote.Config().URLs[0])
	if err != nil {
		// Local or mirror remote without owner/repo: same as no remote
		return nil
	}
	if cfg.GithubOwner == "" {
		cfg.GithubOwner = owner
	}
	if cfg.GithubRepo == "" {
		cfg.GithubRepo = name
	}
	return nil
}

// parseGitRemoteURL extracts owner and repository from https, ssh, scp-like or path remotes.
func parseGitRemoteURL(raw string) (string, string, error) {
	path := strings.TrimSpace(raw)
	switch {
	case strings.Contains(path, "://"):
		u, err := url.Parse(path)
		if err != nil {
			return "", "", fmt.Errorf("invalid remote url %q: %w", raw, err)
		}
		path = u.Path
	case strings.Contains(path, "@") && strings.Contains(path, ":"):
		path = path[strings.Index(path, ":")+1:]
	}
	path = strings.TrimSuffix(filepath.ToSlash(path), "/")
	path = strings.TrimSuffix(path, ".git")
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return "", "", fmt.Errorf("cannot determine owner/repo from remote url %q", raw)
	}
	return segments[len(segments)-2], segments[len(segments)-1], nil
}
