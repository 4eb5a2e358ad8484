package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"
	"github.com/sqweek/dialog"

	"github.com/ingyamilmolinar/foodmatch/core/cue"
	"github.com/ingyamilmolinar/foodmatch/core/engine"
	"github.com/ingyamilmolinar/foodmatch/core/layout"
	"github.com/ingyamilmolinar/foodmatch/core/model"
	"github.com/ingyamilmolinar/foodmatch/core/timer"
	"github.com/ingyamilmolinar/foodmatch/internal/assets"
	"github.com/ingyamilmolinar/foodmatch/internal/audio"
	game_log "github.com/ingyamilmolinar/foodmatch/internal/log"
	"github.com/ingyamilmolinar/foodmatch/internal/ui"
)

// runWindow is replaced in tests.
var runWindow = ebiten.RunGame

func main() {
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}

func run(_ context.Context, cfg *Config) error {
	logger := game_log.New(os.Stderr, cfg.level())
	log := logger.Tagged("MAIN")

	dir := cfg.assets
	if cfg.chooseAssets {
		picked, err := dialog.Directory().Title("Choose the Food Match assets folder").Browse()
		if errors.Is(err, dialog.ErrCancelled) {
			return nil
		}
		if err != nil {
			return fail(cfg, fmt.Errorf("choose assets: %w", err))
		}
		dir = picked
	}

	player := audio.NewEngine(cfg.volume, logger)
	defer player.Close()
	if cfg.audio {
		if err := player.Init(); err != nil {
			log.Warnf("continuing without sound: %v", err)
			cfg.audio = false
		}
	}

	g, startErr := buildGame(cfg, dir, player, logger)
	defer g.Close()

	ebiten.SetWindowSize(layout.BaseWidth, layout.BaseHeight)
	ebiten.SetWindowTitle("Food Match")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Infof("foodmatch v%s, assets from %s, %s policy", releaseVersion, dir, cfg.policy)
	if err := runWindow(g); err != nil {
		return fail(cfg, err)
	}
	if startErr != nil {
		return fail(cfg, startErr)
	}
	return nil
}

// failedSource stands in for a selector that could not be built.
type failedSource struct{ err error }

func (f failedSource) NewRound() (*model.Round, error) { return nil, f.err }

// buildGame wires the selector, cues, session and asset loading into a game.
// When no round can be built the game opens on its failure screen and the
// error is returned as well.
func buildGame(cfg *Config, dir string, player *audio.Engine, logger *game_log.Logger) (*ui.Game, error) {
	log := logger.Tagged("MAIN")
	timers := timer.NewScheduler()
	cues := cue.NewController(player, timers, logger)
	cues.Enabled = cfg.audio

	// Layout replaces these metrics on the first frame.
	m := layout.ComputeScale(layout.Viewport{Width: layout.BaseWidth, Height: layout.BaseHeight, DPR: 1}, cfg.scaleConfig())
	opts := ui.Options{
		Cues:    cues,
		Timers:  timers,
		Audio:   player,
		Scale:   cfg.scaleConfig(),
		Logger:  logger,
		ShowTPS: cfg.showTPS,
	}

	sel, err := model.NewSelector(cfg.selectorConfig(), logger)
	var session *engine.Session
	if err == nil {
		session, err = engine.NewSession(sel, cues, m, engine.Config{Sizes: cfg.sizes(), StartInMenu: cfg.startMenu}, logger)
	}
	if err != nil {
		log.Errorf("cannot start: %v", err)
		// A session without a round still lays out the canvas for the
		// failure screen.
		opts.Session, _ = engine.NewSession(failedSource{err}, cues, m, engine.Config{Sizes: cfg.sizes(), StartInMenu: true}, logger)
		opts.Err = err
		return ui.New(opts), err
	}
	session.OnComplete = func(id string) { log.Infof("round %s complete", id) }

	provider := assets.NewProvider(os.DirFS(dir), player, logger)
	manifest := assets.Manifest(sel.Items())
	opts.Session = session
	opts.Load = func(ctx context.Context, progress func(int)) (*assets.Bundle, error) {
		if fi, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("assets directory: %w", err)
		} else if !fi.IsDir() {
			return nil, fmt.Errorf("assets directory: %s is not a directory", dir)
		}
		b, err := provider.LoadAll(ctx, manifest, progress)
		if err != nil {
			return nil, err
		}
		if cfg.synthFeedback {
			if err := player.RegisterJingles(); err != nil {
				log.Warnf("feedback jingles: %v", err)
			}
		}
		return b, nil
	}
	return ui.New(opts), nil
}

// fail shows err in a native dialog when asked to and returns it for the
// exit status.
func fail(cfg *Config, err error) error {
	if cfg.errorDialog {
		var ce *model.ConfigurationError
		title := "Food Match"
		if errors.As(err, &ce) {
			title = "Food Match configuration"
		}
		_ = zenity.Error(err.Error(), zenity.Title(title), zenity.ErrorIcon)
	}
	return err
}
