package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"syscall"

	"github.com/lixenwraith/vi-raycast/audio"
	"github.com/lixenwraith/vi-raycast/config"
	"github.com/lixenwraith/vi-raycast/game"
	"github.com/lixenwraith/vi-raycast/interrupt"
	"github.com/lixenwraith/vi-raycast/terminal"
)

var (
	configFlag = flag.String("config", "", "path to a TOML config file")
	levelFlag  = flag.String("level", "", "path to a TOML level file")
	mazeFlag   = flag.Bool("maze", false, "play a generated maze instead of a level")
	seedFlag   = flag.Int64("seed", 0, "maze seed (0 = time based)")
	soundFlag  = flag.Bool("sound", false, "play a tone on wall collisions")
	speedFlag  = flag.Float64("speed", 0, "movement speed in cells per second")
	debugFlag  = flag.Bool("debug", false, "write a debug log to logs/raycast.log")
)

func main() {
	os.Exit(run())
}

func run() int {
	// Panic Recovery: restore the terminal before the stack is printed
	defer func() {
		if r := recover(); r != nil {
			handleCrash(r)
		}
	}()

	flag.Parse()

	cfg, err := resolveConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "raycast: %v\n", err)
		return 2
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	f, name, err := loadField(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "raycast: %v\n", err)
		return 1
	}
	log.Printf("level %q %dx%d, spawn (%.2f, %.2f)", name, f.Width(), f.Height(), f.Player.X, f.Player.Y)

	var stopFlag interrupt.Flag
	stopNotify := interrupt.Notify(&stopFlag, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stopNotify()

	opts := game.Options{
		Speed:  cfg.Speed,
		Cancel: &stopFlag,
	}

	if cfg.Sound.Enabled {
		player := audio.NewPlayer(audio.Config{
			SampleRate: cfg.Sound.SampleRate,
			Volume:     cfg.Sound.Volume,
		})
		if err := player.Start(); err != nil {
			log.Printf("audio unavailable, continuing without sound: %v", err)
		} else {
			defer player.Close()
			opts.OnCollision = player.Bump
		}
	}

	session, err := terminal.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "raycast: %v\n", err)
		return 1
	}
	opts.Width, opts.Height = session.Width, session.Height
	log.Printf("session %dx%d", session.Width, session.Height)

	loopErr := game.New(session, f, opts).Run(context.Background())

	// Terminal must be restored before anything is printed
	if err := session.Close(); err != nil && loopErr == nil {
		loopErr = fmt.Errorf("restore terminal: %w", err)
	}
	if loopErr != nil {
		log.Printf("exit with error: %v", loopErr)
		fmt.Fprintf(os.Stderr, "raycast: %v\n", loopErr)
		return 1
	}
	return 0
}

// resolveConfig layers defaults, the config file, environment and explicit flags
func resolveConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "level":
			cfg.Level = *levelFlag
		case "maze":
			cfg.Maze.Enabled = *mazeFlag
		case "seed":
			cfg.Maze.Seed = *seedFlag
		case "sound":
			cfg.Sound.Enabled = *soundFlag
		case "speed":
			cfg.Speed = *speedFlag
		case "debug":
			cfg.Debug = *debugFlag
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// handleCrash resets the terminal, prints the panic with its stack and exits
func handleCrash(r any) {
	terminal.EmergencyReset(os.Stdout)

	// \r\n in case the tty is still raw
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mRAYCAST CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	log.Printf("crash: %v\n%s", r, debug.Stack())
	os.Exit(1)
}
