package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags. See the
// package doc for the list.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-w", "-d", "-t", "-i", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the content API")
	fs.StringVar(&cfg.SiteURL, "w", cfg.SiteURL, "public site URL used in share links")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	carouselInterval := fs.Int("i", int(cfg.CarouselInterval.Seconds()), "carousel interval (in seconds)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// the second-granularity flags must not truncate finer values from env or JSON
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		case "i":
			cfg.CarouselInterval = time.Duration(*carouselInterval) * time.Second
		}
	})
}
