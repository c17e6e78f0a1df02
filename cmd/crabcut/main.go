package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/crabcut/audio"
	"github.com/lixenwraith/crabcut/config"
	"github.com/lixenwraith/crabcut/core"
	"github.com/lixenwraith/crabcut/engine"
)

const (
	logDir      = "logs"
	logFileName = "crabcut.log"
	maxLogSize  = 10 * 1024 * 1024
)

var (
	debugFlag  = flag.Bool("debug", false, "Write debug log to logs/crabcut.log")
	configFlag = flag.String("config", "", "Path to a TOML config file")
	seedFlag   = flag.Int64("seed", 0, "Random seed, 0 picks one from the clock")
	muteFlag   = flag.Bool("mute", false, "Disable audio")
)

// setupLogging routes the standard logger to the log file when debug is set,
// rotating an oversized file first, and discards output otherwise
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("crabcut-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	core.SetCrashScreen(screen)

	var sound engine.Sound
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio.MasterVolume)
		if err := sm.Initialize(); err != nil {
			// Non-fatal, game runs without sound
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer sm.Cleanup()
			sound = sm
		}
	}

	game, err := engine.NewGame(screen, cfg, sound, nil)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	game.Run()
}
