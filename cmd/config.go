package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ingyamilmolinar/foodmatch/core/layout"
	"github.com/ingyamilmolinar/foodmatch/core/model"
	game_log "github.com/ingyamilmolinar/foodmatch/internal/log"
)

const releaseVersion = "0.3.0"

type Config struct {
	assets       string
	chooseAssets bool
	configFile   string
	errorDialog  bool
	logLevel     string

	policy       string
	matches      int
	seed         uint64
	shuffleTiles bool

	maxScale          float64
	maxWidthFraction  float64
	maxHeightFraction float64
	snapOverlap       float64
	startMenu         bool
	showTPS           bool

	audio         bool
	volume        float64
	synthFeedback bool
}

func (c *Config) validate() error {
	if _, err := model.ParsePolicy(c.policy); err != nil {
		return err
	}
	if c.matches < 1 {
		return fmt.Errorf("invalid --matches (must be at least 1): %d", c.matches)
	}
	if c.maxScale <= 0 {
		return fmt.Errorf("invalid --max-scale (must be positive): %g", c.maxScale)
	}
	if c.maxWidthFraction <= 0 || c.maxWidthFraction > 1 {
		return fmt.Errorf("invalid --max-width-fraction (must be in (0,1]): %g", c.maxWidthFraction)
	}
	if c.maxHeightFraction <= 0 || c.maxHeightFraction > 1 {
		return fmt.Errorf("invalid --max-height-fraction (must be in (0,1]): %g", c.maxHeightFraction)
	}
	if c.snapOverlap < 0 {
		return fmt.Errorf("invalid --snap-overlap (must not be negative): %g", c.snapOverlap)
	}
	if c.volume < 0 || c.volume > 1 {
		return fmt.Errorf("invalid --volume (must be between 0-1 inclusive): %g", c.volume)
	}
	if !c.chooseAssets && c.assets == "" {
		return errors.New("--assets must not be empty")
	}
	return nil
}

// selectorConfig converts the pairing flags. validate has already checked
// the policy name.
func (c *Config) selectorConfig() model.SelectorConfig {
	p, _ := model.ParsePolicy(c.policy)
	return model.SelectorConfig{
		Policy:        p,
		MatchesNeeded: c.matches,
		ShuffleTiles:  c.shuffleTiles,
		Seed:          c.seed,
	}
}

func (c *Config) scaleConfig() layout.ScaleConfig {
	return layout.ScaleConfig{
		MaxScale:          c.maxScale,
		MaxWidthFraction:  c.maxWidthFraction,
		MaxHeightFraction: c.maxHeightFraction,
	}
}

func (c *Config) sizes() layout.Sizes {
	s := layout.DefaultSizes()
	s.SnapOverlap = c.snapOverlap
	return s
}

func (c *Config) level() game_log.Level {
	return game_log.LevelFromString(c.logLevel)
}

const defaultAssetsDir = "assets"

// runGame is replaced in tests.
var runGame = run

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("FOODMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "foodmatch",
		Short:         "A drag-and-drop game pairing food pictures with their spoken names.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return applyViper(v, cmd.Flags(), cfg.configFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return runGame(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.assets, "assets", "a", defaultAssetsDir, "directory holding images/ and audio/ (env: FOODMATCH_ASSETS)")
	fs.BoolVar(&cfg.chooseAssets, "choose-assets", false, "pick the assets directory with a native dialog (env: FOODMATCH_CHOOSE_ASSETS)")
	fs.StringVarP(&cfg.configFile, "config", "c", "", "read settings from a yaml, toml or json file")
	fs.BoolVar(&cfg.errorDialog, "error-dialog", false, "show fatal startup errors in a native dialog (env: FOODMATCH_ERROR_DIALOG)")
	fs.StringVarP(&cfg.logLevel, "log-level", "l", "info", "debug, info, warn, error or none (env: FOODMATCH_LOG_LEVEL)")

	fs.StringVarP(&cfg.policy, "policy", "p", "fixed", "pairing policy: fixed or random (env: FOODMATCH_POLICY)")
	fs.IntVarP(&cfg.matches, "matches", "n", model.DefaultMatchesNeeded, "pairs per round (env: FOODMATCH_MATCHES)")
	fs.Uint64Var(&cfg.seed, "seed", 0, "random policy seed, 0 seeds from the clock (env: FOODMATCH_SEED)")
	fs.BoolVar(&cfg.shuffleTiles, "shuffle-tiles", false, "also shuffle the picture row (random policy) (env: FOODMATCH_SHUFFLE_TILES)")

	fs.Float64Var(&cfg.maxScale, "max-scale", layout.DefaultScaleConfig().MaxScale, "largest upscale of the 1200x800 base layout (env: FOODMATCH_MAX_SCALE)")
	fs.Float64Var(&cfg.maxWidthFraction, "max-width-fraction", 1, "share of the window width the canvas may use (env: FOODMATCH_MAX_WIDTH_FRACTION)")
	fs.Float64Var(&cfg.maxHeightFraction, "max-height-fraction", 1, "share of the window height the canvas may use (env: FOODMATCH_MAX_HEIGHT_FRACTION)")
	fs.Float64Var(&cfg.snapOverlap, "snap-overlap", 0, "how far a matched picture sinks into its plate, in base pixels (env: FOODMATCH_SNAP_OVERLAP)")
	fs.BoolVar(&cfg.startMenu, "start-menu", false, "show a start button before the first round (env: FOODMATCH_START_MENU)")
	fs.BoolVar(&cfg.showTPS, "show-tps", false, "print the tick rate in the corner (env: FOODMATCH_SHOW_TPS)")

	fs.BoolVar(&cfg.audio, "audio", true, "play sounds (env: FOODMATCH_AUDIO)")
	fs.Float64Var(&cfg.volume, "volume", 1, "master volume 0-1 (env: FOODMATCH_VOLUME)")
	fs.BoolVar(&cfg.synthFeedback, "synth-feedback", true, "synthesize feedback sounds whose files are missing (env: FOODMATCH_SYNTH_FEEDBACK)")

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("foodmatch v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

// applyViper fills every flag not given on the command line from the
// environment or, failing that, the config file.
func applyViper(v *viper.Viper, fs *pflag.FlagSet, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", configFile, err)
		}
	}
	var setErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			if err := fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil && setErr == nil {
				setErr = fmt.Errorf("%s: %w", f.Name, err)
			}
		}
	})
	return setErr
}
