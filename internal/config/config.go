package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Profile    ProfileConfig    `mapstructure:"profile"`
	Engine     EngineConfig     `mapstructure:"engine"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	Security   SecurityConfig   `mapstructure:"security"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ProfileConfig struct {
	Path string `mapstructure:"path"`
}

type EngineConfig struct {
	Learning  LearningConfig  `mapstructure:"learning"`
	Ranking   RankingConfig   `mapstructure:"ranking"`
	Diversity DiversityConfig `mapstructure:"diversity"`
	Persona   PersonaConfig   `mapstructure:"persona"`
}

// LearningConfig carries the profile adaptation rates. The defaults are
// tuned values; treat them as knobs, not invariants.
type LearningConfig struct {
	ClickRate          float64 `mapstructure:"click_rate"`
	LikeRate           float64 `mapstructure:"like_rate"`
	WatchedRate        float64 `mapstructure:"watched_rate"`
	SkipRate           float64 `mapstructure:"skip_rate"`
	DislikeRate        float64 `mapstructure:"dislike_rate"`
	TimeBucketRatio    float64 `mapstructure:"time_bucket_ratio"`
	TopicDecay         float64 `mapstructure:"topic_decay"`
	TopicPruneBelow    float64 `mapstructure:"topic_prune_below"`
	ChannelEMAFactor   float64 `mapstructure:"channel_ema_factor"`
	MaxConsecutiveSkip int     `mapstructure:"max_consecutive_skips"`

	NotInterestedGlobalRate float64 `mapstructure:"not_interested_global_rate"`
	NotInterestedBucketRate float64 `mapstructure:"not_interested_bucket_rate"`
	NotInterestedChannelPeg float64 `mapstructure:"not_interested_channel_peg"`
}

type RankingConfig struct {
	SubscriptionBonus   float64 `mapstructure:"subscription_bonus"`
	SerendipityBonus    float64 `mapstructure:"serendipity_bonus"`
	CuriosityBonus      float64 `mapstructure:"curiosity_bonus"`
	ChannelBoredomFloor float64 `mapstructure:"channel_boredom_floor"`
	ColdStartThreshold  int     `mapstructure:"cold_start_threshold"`
	ColdStartJitter     float64 `mapstructure:"cold_start_jitter"`
	SteadyStateJitter   float64 `mapstructure:"steady_state_jitter"`
}

type DiversityConfig struct {
	StrictSlots           int     `mapstructure:"strict_slots"`
	MaxPerTopic           int     `mapstructure:"max_per_topic"`
	TitleSimilarityPhase1 float64 `mapstructure:"title_similarity_phase1"`
	TitleSimilarityPhase2 float64 `mapstructure:"title_similarity_phase2"`
	Phase1Window          int     `mapstructure:"phase1_window"`
	Phase2Window          int     `mapstructure:"phase2_window"`
}

type PersonaConfig struct {
	ColdStartInteractions int     `mapstructure:"cold_start_interactions"`
	MusicScoreThreshold   float64 `mapstructure:"music_score_threshold"`
	LiveAffinityThreshold float64 `mapstructure:"live_affinity_threshold"`
	NocturnalRatio        float64 `mapstructure:"nocturnal_ratio"`
	NocturnalMinWeight    float64 `mapstructure:"nocturnal_min_weight"`
	BingerInteractions    int     `mapstructure:"binger_interactions"`
	BingerPacing          float64 `mapstructure:"binger_pacing"`
	ScholarComplexity     float64 `mapstructure:"scholar_complexity"`
	DeepDiverDuration     float64 `mapstructure:"deep_diver_duration"`
	SkimmerDuration       float64 `mapstructure:"skimmer_duration"`
	SkimmerPacing         float64 `mapstructure:"skimmer_pacing"`
	SpecialistDiversity   float64 `mapstructure:"specialist_diversity"`
}

type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	// Environment variable overrides
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", "7823")
	viper.SetDefault("server.mode", "development")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Profile storage defaults
	viper.SetDefault("profile.path", "./data/user_brain.json")

	// Learning defaults
	viper.SetDefault("engine.learning.click_rate", 0.10)
	viper.SetDefault("engine.learning.like_rate", 0.30)
	viper.SetDefault("engine.learning.watched_rate", 0.15)
	viper.SetDefault("engine.learning.skip_rate", -0.15)
	viper.SetDefault("engine.learning.dislike_rate", -0.40)
	viper.SetDefault("engine.learning.time_bucket_ratio", 1.5)
	viper.SetDefault("engine.learning.topic_decay", 0.97)
	viper.SetDefault("engine.learning.topic_prune_below", 0.05)
	viper.SetDefault("engine.learning.channel_ema_factor", 0.95)
	viper.SetDefault("engine.learning.max_consecutive_skips", 30)
	viper.SetDefault("engine.learning.not_interested_global_rate", -0.35)
	viper.SetDefault("engine.learning.not_interested_bucket_rate", -0.25)
	viper.SetDefault("engine.learning.not_interested_channel_peg", 0.05)

	// Ranking defaults
	viper.SetDefault("engine.ranking.subscription_bonus", 0.15)
	viper.SetDefault("engine.ranking.serendipity_bonus", 0.10)
	viper.SetDefault("engine.ranking.curiosity_bonus", 0.10)
	viper.SetDefault("engine.ranking.channel_boredom_floor", 0.05)
	viper.SetDefault("engine.ranking.cold_start_threshold", 50)
	viper.SetDefault("engine.ranking.cold_start_jitter", 0.2)
	viper.SetDefault("engine.ranking.steady_state_jitter", 0.02)

	// Diversity defaults
	viper.SetDefault("engine.diversity.strict_slots", 20)
	viper.SetDefault("engine.diversity.max_per_topic", 3)
	viper.SetDefault("engine.diversity.title_similarity_phase1", 0.55)
	viper.SetDefault("engine.diversity.title_similarity_phase2", 0.65)
	viper.SetDefault("engine.diversity.phase1_window", 5)
	viper.SetDefault("engine.diversity.phase2_window", 3)

	// Persona defaults
	viper.SetDefault("engine.persona.cold_start_interactions", 15)
	viper.SetDefault("engine.persona.music_score_threshold", 0.4)
	viper.SetDefault("engine.persona.live_affinity_threshold", 0.6)
	viper.SetDefault("engine.persona.nocturnal_ratio", 1.5)
	viper.SetDefault("engine.persona.nocturnal_min_weight", 5.0)
	viper.SetDefault("engine.persona.binger_interactions", 100)
	viper.SetDefault("engine.persona.binger_pacing", 0.6)
	viper.SetDefault("engine.persona.scholar_complexity", 0.65)
	viper.SetDefault("engine.persona.deep_diver_duration", 0.7)
	viper.SetDefault("engine.persona.skimmer_duration", 0.3)
	viper.SetDefault("engine.persona.skimmer_pacing", 0.7)
	viper.SetDefault("engine.persona.specialist_diversity", 0.15)

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")

	// Security defaults
	viper.SetDefault("security.cors.allowed_origins", []string{"*"})
	viper.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("security.cors.allowed_headers", []string{"*"})
}
