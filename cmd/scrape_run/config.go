package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/news-scraper/internal/domain"
)

type cliConfig struct {
	URLs       string
	Max        int
	DelayMin   float64
	DelayMax   float64
	RulesPath  string
	Output     string
	Headful    bool
	WindowFrom string
	WindowTo   string
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.URLs, "urls", "", "Seed URLs to scrape, comma-separated (required)")
	flag.IntVar(&cfg.Max, "max", 0, "Maximum articles per seed URL (0 uses the default)")
	flag.Float64Var(&cfg.DelayMin, "delay-min", 2, "Minimum delay between sites, in seconds")
	flag.Float64Var(&cfg.DelayMax, "delay-max", 5, "Maximum delay between sites, in seconds")
	flag.StringVar(&cfg.RulesPath, "rules", "", "Path to scraper rules YAML (optional)")
	flag.StringVar(&cfg.Output, "output", "", "Output path for the job result JSON (default stdout)")
	flag.BoolVar(&cfg.Headful, "headful", false, "Run the browser with a visible window")
	flag.StringVar(&cfg.WindowFrom, "from", "", "Window start date, YYYY-MM-DD (default current week)")
	flag.StringVar(&cfg.WindowTo, "to", "", "Window end date, YYYY-MM-DD, exclusive (default current week)")

	flag.Parse()
	return cfg
}

func (c cliConfig) parseURLs() ([]string, error) {
	if strings.TrimSpace(c.URLs) == "" {
		return nil, fmt.Errorf("at least one seed URL is required, pass -urls")
	}
	parts := strings.Split(c.URLs, ",")
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if u := strings.TrimSpace(p); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("at least one seed URL is required, pass -urls")
	}
	return urls, nil
}

func (c cliConfig) parseWindow() (*domain.Window, error) {
	if c.WindowFrom == "" && c.WindowTo == "" {
		return nil, nil
	}
	if c.WindowFrom == "" || c.WindowTo == "" {
		return nil, fmt.Errorf("both -from and -to are required for a custom window")
	}

	start, err := time.ParseInLocation("2006-01-02", c.WindowFrom, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid -from date %q: %w", c.WindowFrom, err)
	}
	end, err := time.ParseInLocation("2006-01-02", c.WindowTo, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid -to date %q: %w", c.WindowTo, err)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("-to must be after -from")
	}

	return &domain.Window{Start: start, End: end}, nil
}

func (c cliConfig) delayRange() (domain.DelayRange, error) {
	if c.DelayMin < 0 || c.DelayMax < c.DelayMin {
		return domain.DelayRange{}, fmt.Errorf("delay range must be a non-negative [min, max] pair")
	}
	return domain.DelayRange{
		Min: time.Duration(c.DelayMin * float64(time.Second)),
		Max: time.Duration(c.DelayMax * float64(time.Second)),
	}, nil
}
