package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucsky/cuid"
	"github.com/schollz/progressbar/v3"

	"github.com/menupix/menupix/internal/artwork"
	"github.com/menupix/menupix/internal/assets"
	"github.com/menupix/menupix/internal/extractor"
	"github.com/menupix/menupix/internal/fetcher"
	"github.com/menupix/menupix/internal/menu"
	"github.com/menupix/menupix/internal/models"
	"github.com/menupix/menupix/internal/output"
)

// Pipeline runs the weekly menu update end to end: fetch, extract,
// normalize, select highlights, synthesize images, write the document.
// Strictly sequential; the MenuDocument is the only mutable aggregate.
type Pipeline struct {
	cfg     *models.Config
	fetch   *fetcher.Fetcher
	extract *extractor.Extractor
	synth   *artwork.Synthesizer
	log     *log.Logger
	now     func() time.Time
}

func New(cfg *models.Config) (*Pipeline, error) {
	p := &Pipeline{
		cfg: cfg,
		log: log.Default().With("component", "pipeline", "run", cuid.New()),
		now: time.Now,
	}

	if !cfg.SkipExtract {
		p.fetch = fetcher.New(cfg.MenuImageURL, cfg.FetchTimeout)
		ext, err := extractor.New(cfg.ExtractModel)
		if err != nil {
			return nil, err
		}
		p.extract = ext
	}

	if !cfg.SkipImages {
		store, err := newStore(cfg)
		if err != nil {
			return nil, err
		}
		var gen artwork.Generator
		g, err := artwork.NewGeminiGenerator(cfg)
		switch {
		case err == nil:
			gen = g
		case isAuthError(err):
			p.log.Warn("no image-generation credential, using procedural rendering only", "error", err)
		default:
			return nil, err
		}
		p.synth = artwork.NewSynthesizer(gen, store)
	}

	return p, nil
}

func newStore(cfg *models.Config) (assets.Store, error) {
	switch cfg.AssetsDestination {
	case "", "local":
		return assets.NewLocalStore(""), nil
	case "s3":
		return assets.NewS3Store(context.Background(),
			cfg.CloudStorage.Region, cfg.CloudStorage.BucketName, cfg.CloudStorage.Prefix)
	default:
		return nil, fmt.Errorf("unsupported assets destination: %s", cfg.AssetsDestination)
	}
}

func (p *Pipeline) Run(ctx context.Context) error {
	raw, err := p.loadRaw(ctx)
	if err != nil {
		return err
	}

	doc, err := menu.Normalize(raw)
	if err != nil {
		return err
	}
	p.logSummary(doc)

	priorities := p.cfg.PriorityCategories
	if len(priorities) == 0 {
		priorities = models.DefaultPriorityCategories
	}
	daily := menu.DailyHighlights(doc, priorities)
	weekly := menu.WeeklyHighlights(doc, priorities)

	meta := &models.RunMetadata{
		UpdatedAt:        p.now().UTC().Format(time.RFC3339),
		PriorityOrder:    priorities,
		DailyHighlights:  make(map[string]models.DailyHighlight, len(daily)),
		WeeklyHighlights: make(map[string]string, len(weekly)),
	}

	switch {
	case p.cfg.SkipImages && doc.Generated != nil:
		// reuse the highlight metadata recorded by the previous run
		for day, highlight := range doc.Generated.DailyHighlights {
			meta.DailyHighlights[day] = highlight
		}
		for category, url := range doc.Generated.WeeklyHighlights {
			meta.WeeklyHighlights[category] = url
		}
	case p.cfg.SkipImages:
		// no prior run to reuse; record the selections without images
		for _, pick := range daily {
			meta.DailyHighlights[pick.Day] = models.DailyHighlight{Category: pick.Category, ImageURL: pick.Item.ImageURL}
		}
		for _, pick := range weekly {
			meta.WeeklyHighlights[pick.Category] = pick.Item.ImageURL
		}
	default:
		p.synthesize(ctx, daily, weekly, meta)
	}

	doc.Generated = meta
	if err := output.Write(p.cfg.MenuFile, doc); err != nil {
		return fmt.Errorf("writing menu document: %w", err)
	}
	p.log.Info("menu document written", "path", p.cfg.MenuFile,
		"dailyHighlights", len(meta.DailyHighlights), "weeklyHighlights", len(meta.WeeklyHighlights))

	if p.cfg.Print {
		if err := output.Echo(os.Stdout, doc); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) loadRaw(ctx context.Context) (string, error) {
	if p.cfg.SkipExtract {
		p.log.Info("reusing existing menu document", "path", p.cfg.MenuFile)
		data, err := os.ReadFile(p.cfg.MenuFile)
		if err != nil {
			return "", fmt.Errorf("reading menu document: %w", err)
		}
		return string(data), nil
	}
	img, err := p.fetch.Fetch(ctx)
	if err != nil {
		return "", err
	}
	return p.extract.Extract(ctx, img)
}

// synthesize produces one image per daily and weekly highlight and fills
// the metadata maps. Per-item failures are warned about, never fatal.
func (p *Pipeline) synthesize(ctx context.Context, daily []menu.DayPick, weekly []menu.WeekPick, meta *models.RunMetadata) {
	today := p.now().Weekday().String()
	weekKey := menu.WeekKey(p.now())
	assetsDir := filepath.ToSlash(p.cfg.AssetsDir)

	total := len(daily) + len(weekly)
	if p.cfg.TodayOnly {
		total = 0
		for _, pick := range daily {
			if pick.Day == today {
				total++
			}
		}
	}
	bar := progressbar.Default(int64(total), "generating images")

	for _, pick := range daily {
		if !p.cfg.TodayOnly || pick.Day == today {
			rel := path.Join(assetsDir, fmt.Sprintf("%s-%s-%s.png",
				weekKey, strings.ToLower(pick.Day), menu.Slugify(pick.Category)))
			if err := p.synth.Illustrate(ctx, pick.Category, pick.Item, rel); err != nil {
				p.log.Warn("skipping daily highlight image", "day", pick.Day, "error", err)
			}
			_ = bar.Add(1)
		}
		meta.DailyHighlights[pick.Day] = models.DailyHighlight{
			Category: pick.Category,
			ImageURL: pick.Item.ImageURL,
		}
	}

	for _, pick := range weekly {
		if !p.cfg.TodayOnly {
			rel := path.Join(assetsDir, fmt.Sprintf("%s-%s.png", weekKey, menu.Slugify(pick.Category)))
			if err := p.synth.Illustrate(ctx, pick.Category, pick.Item, rel); err != nil {
				p.log.Warn("skipping weekly highlight image", "category", pick.Category, "error", err)
			}
			_ = bar.Add(1)
		}
		meta.WeeklyHighlights[pick.Category] = pick.Item.ImageURL
	}
	_ = bar.Finish()
}

func (p *Pipeline) logSummary(doc *models.MenuDocument) {
	for _, day := range models.Weekdays {
		dayMenu, ok := doc.Days[day]
		if !ok {
			continue
		}
		categories := make([]string, 0, len(dayMenu))
		for category := range dayMenu {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		p.log.Info("extracted", "day", day, "categories", strings.Join(categories, ", "))
	}
}

func isAuthError(err error) bool {
	var authErr *models.AuthError
	return errors.As(err, &authErr)
}
