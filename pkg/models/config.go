package models

type GlobalConfig struct {
	Token        string `toml:"token" json:"token"`
	DefaultScope string `toml:"default_scope" json:"default_scope"`
	APIURL       string `toml:"api_url" json:"api_url"`
}
