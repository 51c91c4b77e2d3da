package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SeedContact struct {
	Name         string   `yaml:"name"`
	Address      string   `yaml:"address"`
	PhoneNumbers []string `yaml:"phone_numbers"`
}

type SeedUser struct {
	Username string        `yaml:"username"`
	Email    string        `yaml:"email"`
	Password string        `yaml:"password"`
	Contacts []SeedContact `yaml:"contacts"`
}

type SeedConfig struct {
	Users []SeedUser `yaml:"users"`
}

// yaml path : docs/seed.yaml
func LoadSeedConfig(path string) (*SeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &SeedConfig{}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
