package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port int    `yaml:"port" env:"PORT" env-default:"4000"`
		Env  string `yaml:"env" env:"ENV" env-default:"development"`
	} `yaml:"server"`
	Store struct {
		BooksFile   string `yaml:"books_file" env:"BOOKSFILE" env-default:"data/books.json"`
		ReviewsFile string `yaml:"reviews_file" env:"REVIEWSFILE" env-default:"data/reviews.json"`
	} `yaml:"store"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"RPS" env-default:"4"`
		Burst   int     `yaml:"burst" env:"BURST" env-default:"8"`
		Enabled bool    `yaml:"enabled" env:"LENABLED" env-default:"true"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS"`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"MENABLED" env-default:"true"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"USERNAME" env-default:"admin"`
		Password string `yaml:"password" env:"PASSWORD" env-default:"password"`
	} `yaml:"basic_auth"`
}

// Load builds the app configuration. An optional .env file is sourced first,
// then the YAML file at path (when one is given) and the environment, with
// struct defaults filling whatever remains unset.
func Load(path string) (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
