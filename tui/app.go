// Package tui is the terminal front end: it draws the maze and the walking
// agent, starts rounds and plays a chime when a decision is reached.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/decision-maze/game"
	"github.com/gdamore/tcell/v2"
)

const frameInterval = time.Second / 30

var ErrMissingOption = errors.New("tui: both options are required")

// Logger receives front end events.
type Logger interface {
	Info(string)
	Error(string)
}

// Sound plays the goal cue.
type Sound interface {
	Play()
}

// Config holds what an App needs to run.
type Config struct {
	Screen  tcell.Screen
	Game    *game.Game
	Sound   Sound // Optional.
	Logger  Logger
	OptionA string
	OptionB string
}

// App runs one game on a terminal screen until the user quits.
type App struct {
	screen  tcell.Screen
	game    *game.Game
	view    *View
	sound   Sound
	logger  Logger
	options [2]string
}

func NewApp(c Config) (*App, error) {
	if c.OptionA == "" || c.OptionB == "" {
		return nil, ErrMissingOption
	}
	if c.Screen == nil || c.Game == nil || c.Logger == nil {
		return nil, errors.New("tui: screen, game and logger are required")
	}
	return &App{
		screen:  c.Screen,
		game:    c.Game,
		view:    NewView(c.Screen),
		sound:   c.Sound,
		logger:  c.Logger,
		options: [2]string{c.OptionA, c.OptionB},
	}, nil
}

// Run starts the first round and the game loop, then redraws until ctx is
// done or the user quits. The screen must already be initialized.
func (a *App) Run(ctx context.Context) error {
	if err := a.newRound(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopErr := make(chan error, 1)
	go func() { loopErr <- a.game.Run(ctx) }()

	events := make(chan tcell.Event, 16)
	go a.pollEvents(ctx, events)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-loopErr:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case r := <-a.game.Results():
			a.logger.Info(fmt.Sprintf("decided %q after %.1fs", r.Label, r.Elapsed))
			if a.sound != nil {
				a.sound.Play()
			}
		case ev := <-events:
			quit, err := a.handleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		case <-ticker.C:
			a.draw()
		}
	}
}

// handleEvent reports whether the user asked to quit.
func (a *App) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true, nil
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return true, nil
			case 'r':
				return false, a.newRound()
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return false, nil
}

func (a *App) newRound() error {
	if _, err := a.game.StartRound(a.options[0], a.options[1]); err != nil {
		a.logger.Error(fmt.Sprintf("starting round: %s", err))
		return err
	}
	return nil
}

func (a *App) draw() {
	m, _, err := a.game.Maze()
	if err != nil {
		return
	}
	s, err := a.game.State()
	if err != nil {
		return
	}
	a.view.Draw(m, s)
}

func (a *App) pollEvents(ctx context.Context, out chan<- tcell.Event) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}
