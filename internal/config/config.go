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
	Storage  Storage  `koanf:"storage"`
	Defaults Defaults `koanf:"defaults"`
}

type Storage struct {
	// Path is the location of the SQLite file holding all snapshots.
	Path string `koanf:"path"`
	// Namespace prefixes every snapshot key, so several trackers can share one file.
	Namespace string `koanf:"namespace"`
}

// Defaults are applied when a snapshot key is missing or unreadable.
type Defaults struct {
	BudgetLimit      int64  `koanf:"budgetlimit"` // paise
	WarningThreshold int    `koanf:"warningthreshold"`
	PeriodDays       int    `koanf:"perioddays"`
	ReminderTime     string `koanf:"remindertime"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Addr: ":8181",
		Storage: Storage{
			Path:      "./kharcha.db",
			Namespace: "kharcha",
		},
		Defaults: Defaults{
			BudgetLimit:      1000000, // ₹10000
			WarningThreshold: 80,
			PeriodDays:       30,
			ReminderTime:     "21:30",
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
		Prefix: "KHARCHA_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "KHARCHA_")), "_", ".")
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
