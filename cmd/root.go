package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/job-responder/internal/decision"
	"github.com/spigell/job-responder/internal/skills"
)

const (
	app       = "job-responder"
	envPrefix = "JOB_RESPONDER"
)

type Config struct {
	JobsFile        string `mapstructure:"jobs-file"`
	ExcludeFile     string `mapstructure:"exclude-file"`
	ExcludeRejected bool   `mapstructure:"exclude-rejected"`
	Limit           int    `mapstructure:"limit"`
	Workers         int    `mapstructure:"workers"`
	Experience      struct {
		Current int `mapstructure:"current"`
	} `mapstructure:"experience"`
	Skills   skills.Lists `mapstructure:"skills"`
	BadWords []string     `mapstructure:"bad-words"`
	Remote   struct {
		RejectTerms []string `mapstructure:"reject-terms"`
	} `mapstructure:"remote"`
	Apply struct {
		Message string `mapstructure:"message"`
		Exclude struct {
			Companies []string `mapstructure:"companies"`
		} `mapstructure:"exclude"`
	} `mapstructure:"apply"`
}

// EngineConfig extracts the decision engine settings.
func (c *Config) EngineConfig() decision.Config {
	return decision.Config{
		Skills:            c.Skills,
		BadWords:          c.BadWords,
		RejectTerms:       c.Remote.RejectTerms,
		CurrentExperience: c.Experience.Current,
	}
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-responder decides which scraped job postings are worth applying to",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-responder.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("remote.reject-terms", decision.DefaultRejectTerms)
	v.SetDefault("limit", 0)
	v.SetDefault("workers", 0)
	v.SetDefault("experience.current", 0)
}

func initConfig() {
	// Only run and check need the config.
	if runCmd.CalledAs() == "" && checkCmd.CalledAs() == "" {
		return
	}

	// .env is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// A missing default config is fine for check; an explicit or broken one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) || runCmd.CalledAs() != "" {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	err := v.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
