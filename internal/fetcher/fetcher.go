package fetcher

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/menupix/menupix/internal/models"
)

// Fetcher downloads the photographed menu board from its fixed location.
type Fetcher struct {
	client *resty.Client
	url    string
	log    *log.Logger
}

func New(url string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: resty.New().SetTimeout(timeout),
		url:    url,
		log:    log.Default().With("component", "fetcher"),
	}
}

// Fetch retrieves the menu board photo. Transport failures and non-success
// statuses are NetworkErrors, which abort the run.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	f.log.Info("fetching menu board", "url", f.url)
	resp, err := f.client.R().SetContext(ctx).Get(f.url)
	if err != nil {
		return nil, &models.NetworkError{URL: f.url, Err: err}
	}
	if resp.IsError() {
		return nil, &models.NetworkError{URL: f.url, Status: resp.StatusCode()}
	}
	body := resp.Body()
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(body)); err == nil {
		f.log.Info("image downloaded", "format", format, "width", cfg.Width, "height", cfg.Height)
	}
	return body, nil
}
