// Command fingerprint-agent is a process hosting one agent's share. In
// naive mode it exposes only the Fingerprint service; in cooperative
// mode it exposes the Fingerprint service and the Cooperation service
// concurrently, mirroring fingerprinting-cli/src/bin/agent_server.rs's
// naive-vs-cooperative dual-listener decision.
package main

import (
	"flag"
	"net"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/fingerprinting/pkg/agent"
	"github.com/luxfi/fingerprinting/pkg/config"
	"github.com/luxfi/fingerprinting/pkg/service"
)

func main() {
	configPath := flag.String("config", "", "path to the service TOML configuration")
	fingerprintAddr := flag.String("fingerprint-addr", ":9000", "address for the Fingerprint service")
	cooperationAddr := flag.String("cooperation-addr", ":9001", "address for the Cooperation service (cooperative mode only)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if *configPath == "" {
		log.Fatal().Msg("fingerprint-agent: --config is required")
	}

	raw, err := os.ReadFile(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("fingerprint-agent: failed to read configuration")
	}

	cfg, err := config.Load(string(raw))
	if err != nil {
		log.Fatal().Err(err).Msg("fingerprint-agent: invalid configuration")
	}

	if err := run(cfg, *fingerprintAddr, *cooperationAddr); err != nil {
		log.Fatal().Err(err).Msg("fingerprint-agent: exiting")
	}
}

func run(cfg *config.FingerprintServiceConfig, fingerprintAddr, cooperationAddr string) error {
	var g errgroup.Group

	fingerprintSvc := service.New(cfg.Protocol)
	g.Go(func() error {
		log.Info().Str("address", fingerprintAddr).Msg("fingerprint-agent: serving Fingerprint service")
		return serve(fingerprintAddr, service.Handler(fingerprintSvc))
	})

	if cfg.Cooperation != nil {
		g.Go(func() error {
			log.Info().Str("address", cooperationAddr).Msg("fingerprint-agent: serving Cooperation service")
			return serve(cooperationAddr, agent.Handler(cfg.Cooperation))
		})
	}

	return g.Wait()
}

func serve(addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return http.Serve(ln, handler)
}
