package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"gotone/core"
	"gotone/music"
)

type Config struct {
	Board  BoardConfig  `yaml:"board"`
	Audio  AudioConfig  `yaml:"audio"`
	Serial SerialConfig `yaml:"serial"`
}

type BoardConfig struct {
	ClockHz      uint32 `yaml:"clock_hz"`
	MaxDivider   uint8  `yaml:"max_divider"`
	Articulation uint32 `yaml:"articulation"`
}

type AudioConfig struct {
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

type SerialConfig struct {
	Device      string        `yaml:"device"`
	Baud        int           `yaml:"baud"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// Default returns the configuration of the reference ATtiny85 board
func Default() Config {
	return Config{
		Board: BoardConfig{
			ClockHz:      8000000,
			MaxDivider:   uint8(core.DividerMaxTimer1),
			Articulation: core.DefaultArticulation,
		},
		Audio: AudioConfig{
			SampleRate: 44100,
			Volume:     0.3,
		},
		Serial: SerialConfig{
			Device:      "/dev/ttyACM0",
			Baud:        250000,
			ReadTimeout: 100 * time.Millisecond,
		},
	}
}

// Load reads a YAML config file over Default(). Keys absent from the file
// keep their defaults; keys present, zero included, are taken as written.
// An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field range
func (c Config) Validate() error {
	if c.Board.ClockHz < 2 {
		return fmt.Errorf("board.clock_hz must be at least 2")
	}
	if c.Board.MaxDivider < 1 || c.Board.MaxDivider > 15 {
		return fmt.Errorf("board.max_divider must be 1..15")
	}
	if c.Board.Articulation > 100 {
		return fmt.Errorf("board.articulation must be 0..100")
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be > 0")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be within 0..1")
	}
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("serial.baud must be > 0")
	}
	if c.Serial.ReadTimeout < 0 {
		return fmt.Errorf("serial.read_timeout must not be negative")
	}
	return nil
}

// MaxDivider returns the configured divider limit
func (c Config) MaxDivider() core.Divider {
	return core.Divider(c.Board.MaxDivider)
}

// MelodyFile is the YAML layout of a melody
type MelodyFile struct {
	Title string `yaml:"title"`
	Tempo uint32 `yaml:"tempo"`
	Notes string `yaml:"notes"`
}

// LoadMelody reads a YAML melody file of the form
//
//	title: Scale
//	tempo: 1600
//	notes: |
//	  C4:QN D4:QN E4:HN
func LoadMelody(path string) (music.Melody, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return music.Melody{}, err
	}
	return ParseMelody(b)
}

// ParseMelody decodes a YAML melody document
func ParseMelody(b []byte) (music.Melody, error) {
	var f MelodyFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return music.Melody{}, fmt.Errorf("parse melody: %w", err)
	}

	notes, err := music.ParseNotes(f.Notes)
	if err != nil {
		return music.Melody{}, fmt.Errorf("melody %q: %w", f.Title, err)
	}
	if len(notes) == 0 {
		return music.Melody{}, fmt.Errorf("melody %q has no notes", f.Title)
	}

	tempo := f.Tempo
	if tempo == 0 {
		tempo = music.DefaultTempo
	}
	return music.Melody{Title: f.Title, Tempo: tempo, Notes: notes}, nil
}
