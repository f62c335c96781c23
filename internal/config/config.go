package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Addr     string   `koanf:"addr"`
	Frontend Frontend `koanf:"frontend"`
	Auth     Auth     `koanf:"auth"`
	Ledger   Ledger   `koanf:"ledger"`
	Database Database `koanf:"db"`
}

type Frontend struct {
	// BaseUrl is the public URL of the MIS frontend, used to build
	// post-login redirect URLs.
	BaseUrl string `koanf:"baseurl"`
}

type Auth struct {
	// SessionTtlHours is how long a login session stays valid.
	SessionTtlHours int `koanf:"sessionttlhours"`
}

type Ledger struct {
	// DailyCapMinutes is the default daily time budget per user, department
	// and date. Departments may override it with their own cap.
	DailyCapMinutes int `koanf:"dailycapminutes"`
	// SerializeCommits makes the budget check-and-insert sequence atomic per
	// (user, department, date) key within this process.
	SerializeCommits bool `koanf:"serializecommits"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Addr: ":8080",
		Frontend: Frontend{
			BaseUrl: "https://pixeltruth.com/mis",
		},
		Auth: Auth{
			SessionTtlHours: 12,
		},
		Ledger: Ledger{
			DailyCapMinutes:  500,
			SerializeCommits: false,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "mis",
			Pass:   "",
			Name:   "mis",
			Schema: "mis",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "MIS_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "MIS_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
