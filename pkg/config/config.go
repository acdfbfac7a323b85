// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	DBCreds struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
	} `yaml:"db_creds"`

	RenamesPath string `yaml:"renames_path"`

	Reconciler struct {
		Source    string `yaml:"source"`
		ReviewDir string `yaml:"review_dir"`
	} `yaml:"reconciler"`

	Resolver struct {
		CandidateLimit   int      `yaml:"candidate_limit"`
		RadiusMeters     float64  `yaml:"radius_meters"`
		TrustTextSources []string `yaml:"trust_text_sources"`
	} `yaml:"resolver"`

	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
}

// LoadConfig loads the configuration from a YAML file. A .env file in the
// working directory, when present, plus process environment variables
// override the database credentials so deployments never keep passwords in
// the YAML.
func LoadConfig(configPath string) (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %v", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %v", err)
	}

	overlayEnv(&config)
	return &config, nil
}

func overlayEnv(c *Config) {
	for env, dst := range map[string]*string{
		"GEOMATCH_DB_HOST":     &c.DBCreds.Host,
		"GEOMATCH_DB_PORT":     &c.DBCreds.Port,
		"GEOMATCH_DB_USER":     &c.DBCreds.Username,
		"GEOMATCH_DB_PASSWORD": &c.DBCreds.Password,
		"GEOMATCH_DB_NAME":     &c.DBCreds.Database,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
}
