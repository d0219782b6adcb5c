package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime knob for the service. It is built once in
// main and passed by reference; no package reads the environment after
// startup.
type Config struct {
	// Mongo
	MongoURI      string `envconfig:"MONGO_URI" required:"true"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"executiveMachines"`
	// HTTP
	Port string `envconfig:"API_PORT" default:"5000"`
	// Tokens
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
	// SSLCommerz
	StoreID       string `envconfig:"SSLCZ_STORE_ID"`
	StorePassword string `envconfig:"SSLCZ_STORE_PASSWORD"`
	Live          bool   `envconfig:"SSLCZ_LIVE" default:"false"`
	// PublicBaseURL is where the gateway reaches us for callbacks.
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:5000"`
	// Where the user's browser lands after the gateway finishes.
	SuccessRedirect string `envconfig:"PAYMENT_SUCCESS_REDIRECT" default:"http://localhost:5000/payment/success"`
	FailRedirect    string `envconfig:"PAYMENT_FAIL_REDIRECT" default:"http://localhost:5000/payment/fail"`
	// Optional integrations
	AMQPURL        string `envconfig:"AMQP_URL"`
	TextbeltAPIKey string `envconfig:"TEXTBELT_API_KEY"`
}

// Load collects configuration from the environment.
func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
