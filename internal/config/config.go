package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       App       `mapstructure:"app"`
	Catalog   Catalog   `mapstructure:"catalog"`
	AI        AI        `mapstructure:"ai"`
	Reviews   Reviews   `mapstructure:"reviews"`
	Artifacts Artifacts `mapstructure:"artifacts"`
	Warehouse Warehouse `mapstructure:"warehouse"`
}

// App holds general application configuration.
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	DataDir  string `mapstructure:"data_dir"` // Root of the bronze/silver/gold layers
}

// Catalog holds movie-catalog API configuration.
type Catalog struct {
	BaseURL      string  `mapstructure:"base_url"`
	BearerToken  string  `mapstructure:"bearer_token"`
	Language     string  `mapstructure:"language"`
	MinVoteCount int     `mapstructure:"min_vote_count"`
	PerGenreCap  int     `mapstructure:"per_genre_cap"`    // Discovery fetch limit per genre
	TopPerLabel  int     `mapstructure:"top_per_category"` // Movies kept per category after ranking
	ThrottleMS   int     `mapstructure:"throttle_ms"`      // Pause between paged calls
	MaxRetries   int     `mapstructure:"max_retries"`      // Transient-error retry budget
	Categories   []Genre `mapstructure:"categories"`       // Discovery categories to extract
}

// Genre names a discovery category and the catalog genres it maps to.
type Genre struct {
	Label  string   `mapstructure:"label"`
	Genres []string `mapstructure:"genres"`
}

// AI holds generation and embedding configuration.
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Gemini model configuration.
type GeminiConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding_model"`
	UseRemoteEmbed bool   `mapstructure:"use_remote_embed"` // Remote embeddings before local fallback
	ThrottleMS     int    `mapstructure:"throttle_ms"`      // Pause between generation calls
}

// Reviews holds the review validation thresholds.
type Reviews struct {
	RelevanceThreshold float64 `mapstructure:"relevance_threshold"`
	DuplicateThreshold float64 `mapstructure:"duplicate_threshold"`
	MinLength          int     `mapstructure:"min_length"`
	MaxKeep            int     `mapstructure:"max_keep"`
}

// Artifacts holds per-artifact generation knobs. The upstream validators
// disagree on exact thresholds, so they are configuration rather than
// literals in the validators.
type Artifacts struct {
	PremiseRetries   int `mapstructure:"premise_retries"`
	PremiseMinWords  int `mapstructure:"premise_min_words"`
	PremiseMaxWords  int `mapstructure:"premise_max_words"`
	AxesRetries      int `mapstructure:"axes_retries"`
	MaxPrimaryAxes   int `mapstructure:"max_primary_axes"`
	AnchorsRetries   int `mapstructure:"anchors_retries"`
	CriticRetries    int `mapstructure:"critic_retries"`
	CriticMinWords   int `mapstructure:"critic_min_words"`
	CapsulesRetries  int `mapstructure:"capsules_retries"`
	CapsulesExpected int `mapstructure:"capsules_expected"`
	CapsulesMinCount int `mapstructure:"capsules_min_count"`
	CapsuleMaxWords  int `mapstructure:"capsule_max_words"`
}

// Warehouse holds the relational warehouse configuration.
type Warehouse struct {
	Path string `mapstructure:"path"` // SQLite database file
}

var globalConfig *Config

// Load loads the configuration from .env, config file, environment and
// defaults, in that precedence order.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".cinecap")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if len(config.Catalog.Categories) == 0 {
		config.Catalog.Categories = DefaultCategories()
	}

	globalConfig = config
	return config, nil
}

// DefaultCategories is the standard extraction set used when the config
// file does not define one.
func DefaultCategories() []Genre {
	return []Genre{
		{Label: "comedy", Genres: []string{"Comedy"}},
		{Label: "drama", Genres: []string{"Drama"}},
		{Label: "romance", Genres: []string{"Romance"}},
		{Label: "action_adventure", Genres: []string{"Action", "Adventure"}},
		{Label: "sci_fi_fantasy", Genres: []string{"Science Fiction", "Fantasy"}},
		{Label: "murder_mystery", Genres: []string{"Mystery"}},
	}
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.data_dir", "data")

	viper.SetDefault("catalog.base_url", "https://api.themoviedb.org/3")
	viper.SetDefault("catalog.language", "en-US")
	viper.SetDefault("catalog.min_vote_count", 5000)
	viper.SetDefault("catalog.per_genre_cap", 1000)
	viper.SetDefault("catalog.top_per_category", 50)
	viper.SetDefault("catalog.throttle_ms", 300)
	viper.SetDefault("catalog.max_retries", 6)

	viper.SetDefault("ai.gemini.model", "gemini-flash-lite-latest")
	viper.SetDefault("ai.gemini.embedding_model", "gemini-embedding-001")
	viper.SetDefault("ai.gemini.use_remote_embed", false)
	viper.SetDefault("ai.gemini.throttle_ms", 500)

	viper.SetDefault("reviews.relevance_threshold", 0.62)
	viper.SetDefault("reviews.duplicate_threshold", 0.92)
	viper.SetDefault("reviews.min_length", 40)
	viper.SetDefault("reviews.max_keep", 10)

	viper.SetDefault("artifacts.premise_retries", 1)
	viper.SetDefault("artifacts.premise_min_words", 8)
	viper.SetDefault("artifacts.premise_max_words", 30)
	viper.SetDefault("artifacts.axes_retries", 2)
	viper.SetDefault("artifacts.max_primary_axes", 2)
	viper.SetDefault("artifacts.anchors_retries", 2)
	viper.SetDefault("artifacts.critic_retries", 2)
	viper.SetDefault("artifacts.critic_min_words", 60)
	viper.SetDefault("artifacts.capsules_retries", 2)
	viper.SetDefault("artifacts.capsules_expected", 5)
	viper.SetDefault("artifacts.capsules_min_count", 4)
	viper.SetDefault("artifacts.capsule_max_words", 18)

	viper.SetDefault("warehouse.path", "cinecap.db")
}

func bindEnvironmentVariables() {
	bindEnvKeys("catalog.bearer_token", []string{"TMDB_BEARER_TOKEN", "CINECAP_CATALOG_BEARER_TOKEN"})
	bindEnvKeys("ai.gemini.api_key", []string{"GEMINI_API_KEY", "GOOGLE_AI_API_KEY"})
	bindEnvKeys("app.data_dir", []string{"CINECAP_DATA_DIR"})
	bindEnvKeys("warehouse.path", []string{"CINECAP_WAREHOUSE_PATH"})
}

// bindEnvKeys binds a viper key to explicit environment variable names so
// credentials can be supplied out-of-band without a config file.
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if err := viper.BindEnv(viperKey, envKey); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind %s to %s: %v\n", viperKey, envKey, err)
		}
	}
}

// RequireCatalogToken fails fast when the catalog credential is missing.
// This is the only fatal startup error: it must stop the run before any
// network activity begins.
func RequireCatalogToken() error {
	if Get().Catalog.BearerToken == "" {
		return fmt.Errorf("catalog bearer token is required: set TMDB_BEARER_TOKEN")
	}
	return nil
}

// RequireGeminiKey fails fast when the generation credential is missing.
func RequireGeminiKey() error {
	if Get().AI.Gemini.APIKey == "" {
		return fmt.Errorf("gemini API key is required: set GEMINI_API_KEY")
	}
	return nil
}

// Convenience accessors.
func GetApp() App                { return Get().App }
func GetCatalog() Catalog        { return Get().Catalog }
func GetReviews() Reviews        { return Get().Reviews }
func GetArtifacts() Artifacts    { return Get().Artifacts }
func GetWarehouse() Warehouse    { return Get().Warehouse }
func GetGeminiAPIKey() string    { return Get().AI.Gemini.APIKey }
func GetGeminiModel() string     { return Get().AI.Gemini.Model }
func GetDataDirectory() string   { return Get().App.DataDir }
func IsDebugMode() bool          { return Get().App.Debug }

// Reset clears the cached configuration. Used by tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}
