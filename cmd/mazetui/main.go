// Command mazetui walks an agent through a generated maze in the terminal
// until it reaches the exit labelled with one of two options.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/beka-birhanu/decision-maze/config"
	"github.com/beka-birhanu/decision-maze/game"
	logger "github.com/beka-birhanu/decision-maze/infrastruture/log"
	"github.com/beka-birhanu/decision-maze/random"
	"github.com/beka-birhanu/decision-maze/tui"
	"github.com/gdamore/tcell/v2"
)

func main() {
	optionA := flag.String("a", "", "label of the left exit")
	optionB := flag.String("b", "", "label of the right exit")
	seed := flag.Int64("seed", config.Envs.Seed, "random seed, 0 seeds from the clock")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	if *optionA == "" || *optionB == "" {
		fmt.Fprintln(os.Stderr, "usage: mazetui -a <option> -b <option> [-seed n] [-log file]")
		os.Exit(2)
	}

	if err := run(*optionA, *optionB, *seed, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "mazetui: %v\n", err)
		os.Exit(1)
	}
}

func run(optionA, optionB string, seed int64, logPath string) error {
	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	appLogger, err := logger.New("MAZETUI", "", out)
	if err != nil {
		return err
	}
	if err := appLogger.SetLevel(config.Envs.LogLevel); err != nil {
		return err
	}

	g, err := game.New(config.Envs.GameConfig(), random.New(seed), appLogger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	chime, err := tui.NewChime()
	if err != nil {
		// Non-fatal, the maze runs without sound
		appLogger.Warn(fmt.Sprintf("Audio initialization failed: %v", err))
	}
	defer chime.Close()

	app, err := tui.NewApp(tui.Config{
		Screen:  screen,
		Game:    g,
		Sound:   chime,
		Logger:  appLogger,
		OptionA: optionA,
		OptionB: optionB,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx)
}
