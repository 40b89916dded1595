package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/theme"
)

var opts struct {
	Listen string `short:"l" long:"listen" env:"PORT" default:"8080" description:"port or address to listen on"`

	Theme struct {
		DB string `long:"db" env:"DB" description:"sqlite file for server-side theme preferences (cookies if empty)"`
	} `group:"theme" namespace:"theme" env-namespace:"THEME"`

	Contact struct {
		Endpoint string        `long:"endpoint" env:"ENDPOINT" description:"form relay URL the contact form is posted to"`
		Timeout  time.Duration `long:"timeout" env:"TIMEOUT" default:"10s" description:"form relay request timeout"`
	} `group:"contact" namespace:"contact" env-namespace:"CONTACT"`

	SMTP struct {
		Host string `long:"host" env:"SMTP_HOST" default:"smtp.gmail.com" description:"smtp host"`
		Port string `long:"port" env:"SMTP_PORT" default:"587" description:"smtp port"`
		User string `long:"user" env:"SMTP_USER" description:"smtp user, also the sender address"`
		Pass string `long:"pass" env:"SMTP_PASS" description:"smtp password"`
		To   string `long:"to" env:"TO_EMAIL" default:"zachkordaspotter@gmail.com" description:"recipient of contact messages"`
	} `group:"smtp" namespace:"smtp"`

	Debug bool `long:"dbg" env:"DEBUG" description:"debug mode"`
}

var revision = "unknown"

func main() {
	fmt.Printf("portfolio %s\n", revision)

	p := flags.NewParser(&opts, flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			p.WriteHelp(os.Stderr)
			os.Exit(2)
		}
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	setupLogs()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		log.Printf("[ERROR] failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := serverConfig{
		Address: listenAddress(opts.Listen),
		Sender:  contactSender(),
		Logger:  log.Default(),
	}

	if opts.Theme.DB != "" {
		prefs, err := theme.OpenSQLite(opts.Theme.DB)
		if err != nil {
			return fmt.Errorf("failed to open theme preferences: %w", err)
		}
		defer prefs.Close()
		cfg.Prefs = prefs
		log.Printf("[INFO] theme preferences stored in %s", opts.Theme.DB)
	}

	srv, err := newServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}
	log.Printf("[INFO] starting portfolio server on %s", cfg.Address)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// contactSender picks the relay endpoint, falling back to smtp when only mail credentials are set.
func contactSender() contact.Sender {
	switch {
	case opts.Contact.Endpoint != "":
		log.Printf("[INFO] contact form relays to %s", opts.Contact.Endpoint)
		return contact.NewRelay(opts.Contact.Endpoint, opts.Contact.Timeout)
	case opts.SMTP.User != "" && opts.SMTP.Pass != "":
		log.Printf("[INFO] contact form sends mail via %s:%s", opts.SMTP.Host, opts.SMTP.Port)
		return NewMailer(MailerConfig{
			Host: opts.SMTP.Host,
			Port: opts.SMTP.Port,
			User: opts.SMTP.User,
			Pass: opts.SMTP.Pass,
			To:   opts.SMTP.To,
		})
	default:
		log.Printf("[WARN] contact form is not configured, set CONTACT_ENDPOINT or SMTP_USER/SMTP_PASS")
		return unconfiguredSender{}
	}
}

// listenAddress accepts a bare port the way PORT is usually set.
func listenAddress(listen string) string {
	for _, r := range listen {
		if r < '0' || r > '9' {
			return listen
		}
	}
	return ":" + listen
}

func setupLogs() {
	log.Setup(log.Msec)
	gin.SetMode(gin.ReleaseMode)
	if opts.Debug {
		log.Setup(log.Debug, log.CallerFunc, log.CallerPkg, log.CallerFile)
		gin.SetMode(gin.DebugMode)
	}
}
