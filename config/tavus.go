package config

import (
	"fmt"
	"os"
)

type TavusConfig struct {
	ApiUrl           string
	ApiKey           string
	DefaultPersonaId string
	CallbackUrl      string
}

func GetTavusConfig() (*TavusConfig, error) {
	apiUrl := os.Getenv("TAVUS_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("TAVUS_API_URL must be set")
	}
	apiKey := os.Getenv("TAVUS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("TAVUS_API_KEY must be set")
	}
	defaultPersonaId := os.Getenv("TAVUS_DEFAULT_PERSONA_ID")
	if defaultPersonaId == "" {
		return nil, fmt.Errorf("TAVUS_DEFAULT_PERSONA_ID must be set")
	}

	return &TavusConfig{
		ApiUrl:           apiUrl,
		ApiKey:           apiKey,
		DefaultPersonaId: defaultPersonaId,
		CallbackUrl:      os.Getenv("TAVUS_CALLBACK_URL"),
	}, nil
}
