package main

import (
	"bufio"
	"io"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const feedChanSize = 256

// feedPump is the single-producer handoff §5 describes: one goroutine
// reads and parses feed lines under t, a second (the caller, on the main
// goroutine) drains them and feeds the engine in arrival order. This is
// deliberately not a worker pool — the matching core is single-threaded
// and synchronous by construction, so only one consumer may ever call
// into it; spinning up concurrent consumers here would violate the
// core's single-execution-context invariant.
type feedPump struct {
	t       *tomb.Tomb
	records chan feedRecord
}

func newFeedPump() *feedPump {
	return &feedPump{records: make(chan feedRecord, feedChanSize)}
}

// start launches the producer goroutine under tmb, reading newline-
// delimited JSON feed records from r until EOF or the tomb dies.
func (p *feedPump) start(tmb *tomb.Tomb, r io.Reader) {
	p.t = tmb
	tmb.Go(func() error {
		defer close(p.records)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			rec, err := parseFeedLine(line)
			if err != nil {
				log.Warn().Err(err).Msg("skipping malformed feed line")
				continue
			}
			select {
			case p.records <- rec:
			case <-tmb.Dying():
				return nil
			}
		}
		return scanner.Err()
	})
}

// recv yields parsed feed records in order. Closed once the producer
// reaches EOF or the tomb is killed.
func (p *feedPump) recv() <-chan feedRecord {
	return p.records
}
