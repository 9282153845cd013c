package config

// SeedConfig controls the development seed. Variables use the SEED_ prefix.
type SeedConfig struct {
	// OnStart seeds the database when the server starts in dev mode.
	OnStart bool `env:"ON_START" envDefault:"false"`

	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	AdminEmail    string `env:"ADMIN_EMAIL"    envDefault:"admin@example.com"`

	// Samples adds example users, templates, menus and form submissions.
	Samples bool `env:"SAMPLES" envDefault:"true"`
}
