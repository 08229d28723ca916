package config

type HTTP struct {
	Port    uint32 `env:"HTTP_PORT" envDefault:"8000"`
	Swagger bool   `env:"HTTP_SWAGGER" envDefault:"true"`

	// PublicURL overrides the scheme and host used to build upload URLs.
	PublicURL string `env:"HTTP_PUBLIC_URL"`

	// ExposeInternalErrors surfaces the underlying message of 5xx errors to callers.
	ExposeInternalErrors bool `env:"HTTP_EXPOSE_INTERNAL_ERRORS" envDefault:"true"`

	CorsOrigins []string `env:"HTTP_CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}
