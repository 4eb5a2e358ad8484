// Command playtest plays one audio file through the game's engine and exits
// when it has finished.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ingyamilmolinar/foodmatch/internal/audio"
	game_log "github.com/ingyamilmolinar/foodmatch/internal/log"
)

func main() {
	vol := flag.Float64("volume", 1, "master volume 0..1")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: playtest [-volume v] <file.mp3|file.wav|correct|wrong|complete>")
		os.Exit(2)
	}
	logger := game_log.New(os.Stderr, game_log.LevelDebug)
	e := audio.NewEngine(*vol, logger)
	if err := e.Init(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	defer e.Close()

	name := flag.Arg(0)
	if f, err := os.Open(name); err == nil {
		if err := e.Decode("clip", name, f); err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
	} else {
		s, jerr := audio.Jingle(name)
		if jerr != nil {
			logger.Errorf("%v (%v)", err, jerr)
			os.Exit(1)
		}
		if err := e.Register("clip", s, audio.OutputFormat); err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
	}
	h, err := e.Play("clip")
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	for {
		for _, c := range e.Finished() {
			if c.Handle == h {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
}
