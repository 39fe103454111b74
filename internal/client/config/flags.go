package config

import (
	"flag"
	"os"
	"time"

	"github.com/supanews/supanews/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend endpoint URL
//	-k string   backend API key
//	-b string   storage bucket name
//	-r string   email confirmation redirect URL
//	-o string   site origin (redirect fallback)
//	-u string   start URL, e.g. "/?post=42"
//	-t int      request timeout in seconds
//	-simple     use the simplified storage path scheme
//	-prod       production build behavior
//
// Note: the function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-b", "-r", "-o", "-u", "-t", "-simple", "-prod"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "a", cfg.BackendURL, "backend endpoint URL")
	fs.StringVar(&cfg.BackendKey, "k", cfg.BackendKey, "backend API key")
	fs.StringVar(&cfg.StorageBucket, "b", cfg.StorageBucket, "storage bucket name")
	fs.StringVar(&cfg.EmailRedirectURL, "r", cfg.EmailRedirectURL, "email confirmation redirect URL")
	fs.StringVar(&cfg.SiteOrigin, "o", cfg.SiteOrigin, "site origin used as redirect fallback")
	fs.StringVar(&cfg.StartURL, "u", cfg.StartURL, "start URL, e.g. \"/?post=42\"")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.SimpleStoragePath, "simple", cfg.SimpleStoragePath, "use simplified storage paths")
	fs.BoolVar(&cfg.Production, "prod", cfg.Production, "production build behavior")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
