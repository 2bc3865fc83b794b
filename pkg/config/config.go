package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	z "github.com/Oudwins/zog"
	"gopkg.in/yaml.v3"
)

type DeviceConfig struct {
	IP       string `json:"ip" yaml:"ip"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Type     string `json:"type" yaml:"type"`
	Enabled  bool   `json:"enabled" yaml:"enabled"`
}

// A device entry that omits enabled is collected; only an explicit
// enabled=false opts a device out.

func (d *DeviceConfig) UnmarshalJSON(data []byte) error {
	type deviceConfig DeviceConfig
	tmp := deviceConfig{Enabled: true}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*d = DeviceConfig(tmp)
	return nil
}

func (d *DeviceConfig) UnmarshalYAML(value *yaml.Node) error {
	type deviceConfig DeviceConfig
	tmp := deviceConfig{Enabled: true}
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*d = DeviceConfig(tmp)
	return nil
}

type CollectionConfig struct {
	// Interval and Timeout are in seconds.
	Interval      int `json:"interval" yaml:"interval"`
	Timeout       int `json:"timeout" yaml:"timeout"`
	RetryAttempts int `json:"retry_attempts" yaml:"retry_attempts"`
}

type OutputConfig struct {
	Directory string `json:"directory" yaml:"directory"`
}

type AlertsConfig struct {
	HighPowerWatts float64 `json:"high_power_watts" yaml:"high_power_watts"`
	// OfflineAfter is in seconds; a device whose newest reading is older
	// raises a stale_data alert.
	OfflineAfter int `json:"offline_after" yaml:"offline_after"`
}

type Config struct {
	Devices    map[string]DeviceConfig `json:"devices" yaml:"devices"`
	Collection CollectionConfig        `json:"collection" yaml:"collection"`
	Output     OutputConfig            `json:"output" yaml:"output"`
	Alerts     AlertsConfig            `json:"alerts" yaml:"alerts"`
}

var deviceSchema = z.Struct(z.Shape{
	"IP":       z.String().Required(),
	"Port":     z.Int().GT(0),
	"Username": z.String().Required(),
	"Type":     z.String().OneOf([]string{"stretch", "smile"}),
})

var collectionSchema = z.Struct(z.Shape{
	"Interval":      z.Int().GT(0),
	"Timeout":       z.Int().GT(0),
	"RetryAttempts": z.Int().GTE(1),
})

var alertsSchema = z.Struct(z.Shape{
	"HighPowerWatts": z.Float64().GTE(0),
	"OfflineAfter":   z.Int().GTE(0),
})

// Default returns the built-in configuration: one Stretch and one Smile
// device on the local network, polled every minute.
func Default() *Config {
	return &Config{
		Devices: map[string]DeviceConfig{
			"stretch": {
				IP:       "192.168.178.17",
				Port:     80,
				Username: "stretch",
				Type:     "stretch",
				Enabled:  true,
			},
			"smile": {
				IP:       "192.168.178.35",
				Port:     80,
				Username: "smile",
				Type:     "smile",
				Enabled:  true,
			},
		},
		Collection: CollectionConfig{
			Interval:      60,
			Timeout:       10,
			RetryAttempts: 3,
		},
		Output: OutputConfig{Directory: "data"},
		Alerts: AlertsConfig{HighPowerWatts: 5000, OfflineAfter: 900},
	}
}

// Load reads a JSON or YAML config file, applies defaults for omitted
// settings and validates the result. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	switch ext := filepath.Ext(path); ext {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config extension %q (want .json, .yml or .yaml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Collection.Interval == 0 {
		c.Collection.Interval = def.Collection.Interval
	}
	if c.Collection.Timeout == 0 {
		c.Collection.Timeout = def.Collection.Timeout
	}
	if c.Collection.RetryAttempts == 0 {
		c.Collection.RetryAttempts = def.Collection.RetryAttempts
	}
	if c.Output.Directory == "" {
		c.Output.Directory = def.Output.Directory
	}
	if c.Alerts.HighPowerWatts == 0 {
		c.Alerts.HighPowerWatts = def.Alerts.HighPowerWatts
	}
	if c.Alerts.OfflineAfter == 0 {
		c.Alerts.OfflineAfter = def.Alerts.OfflineAfter
	}
	for name, d := range c.Devices {
		if d.Port == 0 {
			d.Port = 80
		}
		if d.Type == "" {
			// config files key devices by model name
			d.Type = name
		}
		c.Devices[name] = d
	}
}

func (c *Config) validate() error {
	if len(c.Devices) == 0 {
		return fmt.Errorf("config has no devices")
	}
	for name, d := range c.Devices {
		if errs := deviceSchema.Validate(&d); errs != nil {
			return fmt.Errorf("invalid device %q: %v", name, errs)
		}
	}
	if errs := collectionSchema.Validate(&c.Collection); errs != nil {
		return fmt.Errorf("invalid collection settings: %v", errs)
	}
	if errs := alertsSchema.Validate(&c.Alerts); errs != nil {
		return fmt.Errorf("invalid alert settings: %v", errs)
	}
	return nil
}

// EnabledDevices returns the device names with enabled=true, sorted order
// is not guaranteed.
func (c *Config) EnabledDevices(deviceType string) map[string]DeviceConfig {
	out := map[string]DeviceConfig{}
	for name, d := range c.Devices {
		if d.Enabled && (deviceType == "" || d.Type == deviceType) {
			out[name] = d
		}
	}
	return out
}
