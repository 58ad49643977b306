package config

import (
	"gopkg.in/yaml.v3"
	"os"
)

type RemnantsConfig struct {
	URL       string `yaml:"url"`
	HeaderRow int    `yaml:"header_row"`
}

type OzonConfig struct {
	ClientID       string `yaml:"client_id"`
	ApiKey         string `yaml:"api_key"`
	StockBatchSize int    `yaml:"stock_batch_size"`
	PriceBatchSize int    `yaml:"price_batch_size"`
}

type YandexCampaignConfig struct {
	CampaignID  string `yaml:"campaign_id"`
	WarehouseID string `yaml:"warehouse_id"`
}

type YandexConfig struct {
	Token          string               `yaml:"token"`
	FBS            YandexCampaignConfig `yaml:"fbs"`
	DBS            YandexCampaignConfig `yaml:"dbs"`
	StockBatchSize int                  `yaml:"stock_batch_size"`
	PriceBatchSize int                  `yaml:"price_batch_size"`
}

type AppConfig struct {
	Remnants    RemnantsConfig `yaml:"remnants"`
	Ozon        OzonConfig     `yaml:"ozon"`
	Yandex      YandexConfig   `yaml:"yandex"`
	Postgres    PostgresConfig `yaml:"postgres"`
	HistoryOn   bool           `yaml:"history_enabled"`
	MetricsAddr string         `yaml:"metrics_addr"`
}

func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := &AppConfig{}
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	config.applyEnv()
	return config, nil
}

// DefaultConfig returns a configuration usable without a yaml file, with
// secrets and identifiers taken from the environment.
func DefaultConfig() *AppConfig {
	config := &AppConfig{}
	config.applyEnv()
	return config
}

// applyEnv подставляет секреты из окружения; yaml хранит только структуру.
func (c *AppConfig) applyEnv() {
	c.Ozon.ClientID = getEnv("CLIENT_ID", c.Ozon.ClientID)
	c.Ozon.ApiKey = getEnv("SELLER_TOKEN", c.Ozon.ApiKey)
	c.Yandex.Token = getEnv("MARKET_TOKEN", c.Yandex.Token)
	c.Yandex.FBS.CampaignID = getEnv("FBS_ID", c.Yandex.FBS.CampaignID)
	c.Yandex.DBS.CampaignID = getEnv("DBS_ID", c.Yandex.DBS.CampaignID)
	c.Yandex.FBS.WarehouseID = getEnv("WAREHOUSE_FBS_ID", c.Yandex.FBS.WarehouseID)
	c.Yandex.DBS.WarehouseID = getEnv("WAREHOUSE_DBS_ID", c.Yandex.DBS.WarehouseID)
	c.Postgres.applyEnv()
}
