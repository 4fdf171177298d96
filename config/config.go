// Package config loads the robot configuration: a YAML or JSON file,
// DRAGON_ environment overrides and built-in defaults, in viper's order of
// precedence.
package config

import (
	"math"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"dragon-ctrl-core/auton"
	"dragon-ctrl-core/chassis"
	"dragon-ctrl-core/input"
	"dragon-ctrl-core/robot"
)

const EnvPrefix = "DRAGON"

// Hardware variants.
const (
	VariantYear1        = "year1"
	VariantSoftwareTest = "softwaretest"
	VariantSerialBase   = "serialbase"
	VariantSim          = "sim"
)

// NoPin marks an unwired GPIO input or output.
const NoPin = -1

type Config struct {
	Loop        LoopConfig           `mapstructure:"loop"`
	Hardware    HardwareConfig       `mapstructure:"hardware"`
	Input       InputConfig          `mapstructure:"input"`
	LineTracker chassis.LineTracker  `mapstructure:"line_tracker"`
	Approach    auton.ApproachConfig `mapstructure:"approach"`
	Telemetry   TelemetryConfig      `mapstructure:"telemetry"`
	Log         LogConfig            `mapstructure:"log"`
}

type LoopConfig struct {
	CycleMS   int     `mapstructure:"cycle_ms"`
	DurationS float64 `mapstructure:"duration_s"`
	Mode      string  `mapstructure:"mode"`
}

func (l LoopConfig) Period() time.Duration {
	return time.Duration(l.CycleMS) * time.Millisecond
}

// Duration is how long to run, 0 for until interrupted.
func (l LoopConfig) Duration() time.Duration {
	return time.Duration(l.DurationS * float64(time.Second))
}

type HardwareConfig struct {
	Variant      string       `mapstructure:"variant"`
	CANInterface string       `mapstructure:"can_interface"`
	CANMap       string       `mapstructure:"can_map"`
	Invert       InvertConfig `mapstructure:"invert"`
	Pins         PinConfig    `mapstructure:"pins"`
	Serial       SerialConfig `mapstructure:"serial"`
	Sim          SimConfig    `mapstructure:"sim"`
}

type InvertConfig struct {
	LeftDrive     bool `mapstructure:"left_drive"`
	RightDrive    bool `mapstructure:"right_drive"`
	ShooterWheel  bool `mapstructure:"shooter_wheel"`
	ShooterLoader bool `mapstructure:"shooter_loader"`
	ShooterAlign  bool `mapstructure:"shooter_align"`
}

// PinConfig holds sysfs GPIO numbers. Switches are wired active low.
type PinConfig struct {
	Bumper     int   `mapstructure:"bumper"`
	LoaderHome int   `mapstructure:"loader_home"`
	LeftBound  int   `mapstructure:"left_bound"`
	RightBound int   `mapstructure:"right_bound"`
	Lights     []int `mapstructure:"lights"`
}

type SerialConfig struct {
	Port string `mapstructure:"port"`
	Baud int    `mapstructure:"baud"`
}

type SimConfig struct {
	MaxSpeedFPS    float64 `mapstructure:"max_speed_fps"`
	WallDistanceFt float64 `mapstructure:"wall_distance_ft"`
}

type InputConfig struct {
	DriverDevice  string            `mapstructure:"driver_device"`
	CopilotDevice string            `mapstructure:"copilot_device"`
	Model         string            `mapstructure:"model"`
	Bindings      map[string]string `mapstructure:"bindings"`
}

type TelemetryConfig struct {
	DashboardAddr string `mapstructure:"dashboard_addr"`
	LogEvery      int    `mapstructure:"log_every"`
}

type LogConfig struct {
	Path   string `mapstructure:"path"`
	Level  string `mapstructure:"level"`
	Stdout bool   `mapstructure:"stdout"`
}

// New returns a viper instance with every default set and environment
// overrides enabled, so flags can be bound to it before Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("loop.cycle_ms", 20)
	v.SetDefault("loop.duration_s", 0)
	v.SetDefault("loop.mode", "teleop")

	v.SetDefault("hardware.variant", VariantSim)
	v.SetDefault("hardware.can_interface", "can0")
	v.SetDefault("hardware.can_map", "config/can/year1_map.csv")
	v.SetDefault("hardware.invert.left_drive", true)
	v.SetDefault("hardware.invert.right_drive", false)
	v.SetDefault("hardware.invert.shooter_wheel", false)
	v.SetDefault("hardware.invert.shooter_loader", false)
	v.SetDefault("hardware.invert.shooter_align", false)
	v.SetDefault("hardware.pins.bumper", NoPin)
	v.SetDefault("hardware.pins.loader_home", NoPin)
	v.SetDefault("hardware.pins.left_bound", NoPin)
	v.SetDefault("hardware.pins.right_bound", NoPin)
	v.SetDefault("hardware.pins.lights", []int{})
	v.SetDefault("hardware.serial.port", "/dev/ttyUSB0")
	v.SetDefault("hardware.serial.baud", 115200)
	v.SetDefault("hardware.sim.max_speed_fps", 10.0)
	v.SetDefault("hardware.sim.wall_distance_ft", 0.0)

	v.SetDefault("input.driver_device", "")
	v.SetDefault("input.copilot_device", "")
	v.SetDefault("input.model", "xbox")
	v.SetDefault("input.bindings", map[string]string{})

	lt := chassis.DefaultLineTracker()
	v.SetDefault("line_tracker.black.low", lt.Black.Low)
	v.SetDefault("line_tracker.black.high", lt.Black.High)
	v.SetDefault("line_tracker.white.low", lt.White.Low)
	v.SetDefault("line_tracker.white.high", lt.White.High)

	ap := auton.DefaultApproachConfig()
	v.SetDefault("approach.approach_speed", ap.ApproachSpeed)
	v.SetDefault("approach.backup_speed", ap.BackupSpeed)
	v.SetDefault("approach.stop_speed", ap.StopSpeed)
	v.SetDefault("approach.target_distance_ft", ap.TargetDistance)

	v.SetDefault("telemetry.dashboard_addr", "")
	v.SetDefault("telemetry.log_every", 50)

	v.SetDefault("log.path", "dragonbot.log")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.stdout", true)
}

// LoadEnvFiles loads .env style files into the process environment.
// Missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return errors.Wrapf(err, "load %s", p)
		}
	}
	return nil
}

// Load reads path into v when path is set, then decodes and validates.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validRange(name string, r chassis.VoltageRange) error {
	if r.Low > r.High {
		return errors.Errorf("line_tracker.%s: low %.3f above high %.3f", name, r.Low, r.High)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Loop.CycleMS <= 0 {
		return errors.Errorf("loop.cycle_ms must be positive, got %d", c.Loop.CycleMS)
	}
	if c.Loop.DurationS < 0 {
		return errors.Errorf("loop.duration_s must not be negative, got %g", c.Loop.DurationS)
	}
	if _, ok := robot.ParseMode(c.Loop.Mode); !ok {
		return errors.Errorf("loop.mode %q is not disabled, autonomous or teleop", c.Loop.Mode)
	}

	switch c.Hardware.Variant {
	case VariantYear1, VariantSoftwareTest:
		if c.Hardware.CANInterface == "" || c.Hardware.CANMap == "" {
			return errors.Errorf("hardware.variant %s needs can_interface and can_map", c.Hardware.Variant)
		}
	case VariantSerialBase:
		if c.Hardware.Serial.Port == "" || c.Hardware.Serial.Baud <= 0 {
			return errors.New("hardware.variant serialbase needs serial.port and a positive serial.baud")
		}
	case VariantSim:
		if c.Hardware.Sim.MaxSpeedFPS <= 0 {
			return errors.New("hardware.sim.max_speed_fps must be positive")
		}
	default:
		return errors.Errorf("unknown hardware.variant %q", c.Hardware.Variant)
	}
	if n := len(c.Hardware.Pins.Lights); n != 0 && n != 3 {
		return errors.Errorf("hardware.pins.lights needs 3 pins, got %d", n)
	}

	if err := validRange("black", c.LineTracker.Black); err != nil {
		return err
	}
	if err := validRange("white", c.LineTracker.White); err != nil {
		return err
	}
	if c.LineTracker.Black.Overlaps(c.LineTracker.White) {
		return errors.New("line_tracker: black and white voltage ranges overlap")
	}

	if t := c.Approach.TargetDistance; !(t > 0) || math.IsInf(t, 1) {
		return errors.Errorf("approach.target_distance_ft must be positive and finite, got %g", t)
	}
	for name, s := range map[string]float64{
		"approach_speed": c.Approach.ApproachSpeed,
		"backup_speed":   c.Approach.BackupSpeed,
		"stop_speed":     c.Approach.StopSpeed,
	} {
		if !(s >= -1 && s <= 1) {
			return errors.Errorf("approach.%s %g outside [-1, 1]", name, s)
		}
	}

	if _, ok := input.ModelByName(c.Input.Model); !ok {
		return errors.Errorf("unknown input.model %q", c.Input.Model)
	}
	if _, err := c.Mapping(); err != nil {
		return err
	}
	if c.Telemetry.LogEvery < 0 {
		return errors.New("telemetry.log_every must not be negative")
	}
	return nil
}

// Mapping is the default function table with the configured bindings
// applied.
func (c Config) Mapping() (input.Mapping, error) {
	m, err := input.DefaultMapping().WithOverrides(c.Input.Bindings)
	if err != nil {
		return m, errors.Wrap(err, "input.bindings")
	}
	return m, nil
}
