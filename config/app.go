package config

type App struct {
	Port       string `env:"APP_PORT" default:"8080"`
	APIBaseURL string `env:"API_URL,required"`
	Env        string `env:"APP_ENV" default:"dev"`
}
