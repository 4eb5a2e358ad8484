package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ingyamilmolinar/foodmatch/core/cue"
	"github.com/ingyamilmolinar/foodmatch/core/model"
	game_log "github.com/ingyamilmolinar/foodmatch/internal/log"
)

// Keys of the two decorative images.
const (
	PlateKey = "plate"
	SmileKey = "smile"
)

// maxParallel bounds concurrent decodes during LoadAll.
const maxParallel = 4

type Kind int

const (
	KindImage Kind = iota
	KindAudio
)

// Resource is one file the game wants. Paths are tried in order.
type Resource struct {
	Key   string
	Kind  Kind
	Paths []string
	// Item is set for food images so a placeholder can be drawn.
	Item *model.Item
}

// Manifest lists every resource for the given items: their pictures and
// identifying cues, the plate and smile images and the feedback sounds.
func Manifest(items []model.Item) []Resource {
	var out []Resource
	for i := range items {
		it := items[i]
		out = append(out, Resource{
			Key:   it.ImageKey(),
			Kind:  KindImage,
			Paths: []string{fmt.Sprintf("images/%d.jpg", it.ID), fmt.Sprintf("images/%d.png", it.ID)},
			Item:  &it,
		})
	}
	out = append(out,
		Resource{Key: PlateKey, Kind: KindImage, Paths: []string{"images/panzi.jpg", "images/panzi.png"}},
		Resource{Key: SmileKey, Kind: KindImage, Paths: []string{"images/smile.jpg", "images/smile.png"}},
	)
	for _, it := range items {
		out = append(out, Resource{
			Key:   it.AudioKey(),
			Kind:  KindAudio,
			Paths: []string{fmt.Sprintf("audio/%d.mp3", it.ID), fmt.Sprintf("audio/%d.wav", it.ID)},
		})
	}
	feedback := []struct {
		f    cue.Feedback
		file string
	}{
		{cue.Correct, "r"},
		{cue.Wrong, "f"},
		{cue.Complete, "all_right"},
	}
	for _, fb := range feedback {
		out = append(out, Resource{
			Key:   fb.f.Key(),
			Kind:  KindAudio,
			Paths: []string{"audio/" + fb.file + ".mp3", "audio/" + fb.file + ".wav"},
		})
	}
	return out
}

// AudioSink receives decoded clips. *audio.Engine implements it.
type AudioSink interface {
	Decode(id, name string, r io.ReadCloser) error
}

// Bundle is the outcome of LoadAll. Missing plate or smile images are simply
// absent from Images; the renderer draws shapes instead.
type Bundle struct {
	Images   map[string]image.Image
	Failures []error
}

// Provider reads the game's resources from an fs.FS.
type Provider struct {
	fsys   fs.FS
	audio  AudioSink
	logger *game_log.Logger
}

func NewProvider(fsys fs.FS, audio AudioSink, logger *game_log.Logger) *Provider {
	return &Provider{fsys: fsys, audio: audio, logger: logger.Tagged("ASSETS")}
}

// open returns the first path of r that exists.
func (p *Provider) open(r Resource) (fs.File, string, error) {
	var firstErr error
	for _, path := range r.Paths {
		f, err := p.fsys.Open(path)
		if err == nil {
			return f, path, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fs.ErrNotExist
	}
	return nil, r.Paths[0], firstErr
}

// LoadImage decodes an image resource. A food image that cannot be read is
// replaced by a numbered placeholder and still reported as success.
func (p *Provider) LoadImage(r Resource) (image.Image, error) {
	img, path, err := p.decodeImage(r)
	if err == nil {
		return img, nil
	}
	if r.Item != nil {
		p.logger.Warnf("%s unavailable, drawing placeholder: %v", path, err)
		return Placeholder(r.Item.ID), nil
	}
	return nil, &model.AssetLoadError{ID: r.Key, Path: path, Err: err}
}

func (p *Provider) decodeImage(r Resource) (image.Image, string, error) {
	f, path, err := p.open(r)
	if err != nil {
		return nil, path, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, path, err
}

// LoadAudio decodes an audio resource into the sink.
func (p *Provider) LoadAudio(r Resource) error {
	if p.audio == nil {
		return &model.AssetLoadError{ID: r.Key, Path: r.Paths[0], Err: errors.New("audio disabled")}
	}
	f, path, err := p.open(r)
	if err != nil {
		return &model.AssetLoadError{ID: r.Key, Path: path, Err: err}
	}
	if err := p.audio.Decode(r.Key, path, f); err != nil {
		return &model.AssetLoadError{ID: r.Key, Path: path, Err: err}
	}
	return nil
}

// LoadAll loads every resource concurrently and returns once all of them
// have settled. Individual failures are collected in the bundle; only a
// cancelled ctx makes LoadAll itself fail. progress, when set, is called
// after each settled resource with a non-decreasing percentage.
func (p *Provider) LoadAll(ctx context.Context, res []Resource, progress func(pct int)) (*Bundle, error) {
	b := &Bundle{Images: map[string]image.Image{}}
	var (
		mu      sync.Mutex
		settled int
	)
	settle := func(key string, img image.Image, err error) {
		mu.Lock()
		defer mu.Unlock()
		if img != nil {
			b.Images[key] = img
		}
		if err != nil {
			p.logger.Warnf("%v", err)
			b.Failures = append(b.Failures, err)
		}
		settled++
		if progress != nil {
			progress(settled * 100 / len(res))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for _, r := range res {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			switch r.Kind {
			case KindImage:
				img, err := p.LoadImage(r)
				settle(r.Key, img, err)
			case KindAudio:
				settle(r.Key, nil, p.LoadAudio(r))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}
	p.logger.Infof("loaded %d resources, %d failed", len(res), len(b.Failures))
	return b, nil
}
