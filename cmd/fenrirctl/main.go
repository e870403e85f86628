// Command fenrirctl is a demo harness around the matching core: it
// replays a JSONL feed of submissions through one engine and reports
// fills, dispositions, and book depth. It is explicitly an external
// collaborator (§1) — ingress framing, persistence, and auth are not
// the core's concern and are not reproduced here beyond what a replay
// driver needs.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("fenrirctl exited with error")
		os.Exit(1)
	}
}
