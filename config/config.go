// Package config provides configuration management for the Frisbee payment service.
// Configuration can be loaded from YAML files and overridden by environment variables.
package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"sync"
)

// Config holds all configuration for the Frisbee payment service.
// Values can be set via YAML configuration file or environment variables.
// Environment variables take precedence over YAML values.
type Config struct {
	IsDebug    bool  `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	LogRecords int64 `yaml:"log_records" env:"LOG_RECORDS" env-default:"0"`
	Listen     struct {
		BindIP   string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"PORT" env-default:"5200"`
		TLS      bool   `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
	} `yaml:"listen"`
	Log struct {
		File      string `yaml:"file" env:"LOG_FILE" env-default:""`
		MaxSizeMb int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB" env-default:"50"`
	} `yaml:"log"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:"admin"`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:""`
	} `yaml:"mongo"`
	Redis struct {
		Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
		Address  string `yaml:"address" env:"REDIS_ADDRESS" env-default:"127.0.0.1:6379"`
		Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
		DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	} `yaml:"redis"`
	Merchant struct {
		Id                 string `yaml:"id" env:"MERCHANT_ID" env-default:""`
		SecretKey          string `yaml:"secret_key" env:"MERCHANT_SECRET_KEY" env-default:""`
		EncryptionKey      string `yaml:"encryption_key" env:"MERCHANT_ENCRYPTION_KEY" env-default:""`
		TestMode           bool   `yaml:"test_mode" env:"MERCHANT_TEST_MODE" env-default:"false"`
		PreAuth            bool   `yaml:"pre_auth" env:"MERCHANT_PRE_AUTH" env-default:"false"`
		PaymentType        string `yaml:"payment_type" env:"MERCHANT_PAYMENT_TYPE" env-default:"redirect"`
		SkipSignatureCheck bool   `yaml:"skip_signature_check" env:"MERCHANT_SKIP_SIGNATURE_CHECK" env-default:"false"`
		CallbackUrl        string `yaml:"callback_url" env:"MERCHANT_CALLBACK_URL" env-default:""`
		ResponseUrl        string `yaml:"response_url" env:"MERCHANT_RESPONSE_URL" env-default:""`
	} `yaml:"merchant"`
	Methods struct {
		Cards struct {
			Enabled bool   `yaml:"enabled" env:"METHOD_CARDS_ENABLED" env-default:"true"`
			Title   string `yaml:"title" env:"METHOD_CARDS_TITLE" env-default:""`
		} `yaml:"cards"`
		BankLinks struct {
			Enabled        bool   `yaml:"enabled" env:"METHOD_BANK_LINKS_ENABLED" env-default:"false"`
			Title          string `yaml:"title" env:"METHOD_BANK_LINKS_TITLE" env-default:""`
			DefaultCountry string `yaml:"default_country" env:"METHOD_BANK_LINKS_DEFAULT_COUNTRY" env-default:""`
			Countries      string `yaml:"countries" env:"METHOD_BANK_LINKS_COUNTRIES" env-default:""`
		} `yaml:"bank_links"`
		Wallets struct {
			Enabled bool   `yaml:"enabled" env:"METHOD_WALLETS_ENABLED" env-default:"false"`
			Title   string `yaml:"title" env:"METHOD_WALLETS_TITLE" env-default:""`
		} `yaml:"wallets"`
	} `yaml:"methods"`
	Statuses struct {
		Processing string `yaml:"processing" env:"ORDER_STATUS_PROCESSING" env-default:"processing"`
		Canceled   string `yaml:"canceled" env:"ORDER_STATUS_CANCELED" env-default:"canceled"`
		Paid       string `yaml:"paid" env:"ORDER_STATUS_PAID" env-default:"complete"`
	} `yaml:"statuses"`
	Shop struct {
		Title      string `yaml:"title" env:"SHOP_TITLE" env-default:""`
		Domain     string `yaml:"domain" env:"SHOP_DOMAIN" env-default:""`
		CmsName    string `yaml:"cms_name" env:"SHOP_CMS_NAME" env-default:"Frisbee Go"`
		CmsVersion string `yaml:"cms_version" env:"SHOP_CMS_VERSION" env-default:"1.0"`
	} `yaml:"shop"`
}

var instance *Config
var once sync.Once

// GetConfig loads configuration from the specified YAML file path.
// Configuration values can be overridden by environment variables.
// This function uses a singleton pattern and only loads the config once.
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("load config: %w; %s", err, desc)
			instance = nil
		}
	})
	return instance, err
}
