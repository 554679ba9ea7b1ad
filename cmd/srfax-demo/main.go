// Command srfax-demo exercises the fax client end to end against the mock
// endpoint: queue a fax, poll its status, list both folders, retrieve the
// content and delete it again. No credentials or network access needed.
package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	srfax "github.com/vingd/srfax-go"
	"github.com/vingd/srfax-go/config"
	"github.com/vingd/srfax-go/logger"
)

func main() {
	bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	demoEnv := map[string]string{
		"APP_ENV":               "development",
		"LOG_LEVEL":             "debug",
		"SRFAX_ACCESS_ID":       "100001",
		"SRFAX_ACCESS_PWD":      "demo-password",
		"SRFAX_CALLER_ID":       "+12025550134",
		"SRFAX_SENDER_EMAIL":    "faxes@example.com",
		"SRFAX_ENDPOINT":        "mock",
		"SRFAX_TIMEOUT_SECONDS": "10",
	}
	for key, value := range demoEnv {
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			bootstrap.Fatal().Err(err).Str("key", key).Msg("failed to set env value")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		bootstrap.Fatal().Err(err).Msg("failed to load config")
	}

	log, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		bootstrap.Fatal().Err(err).Msg("failed to build logger")
	}

	client, err := srfax.New(cfg.Fax, *log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build fax client")
	}

	document := filepath.Join(os.TempDir(), "srfax-demo.txt")
	if err := os.WriteFile(document, []byte("Hello from the fax demo.\n"), 0o600); err != nil {
		log.Fatal().Err(err).Msg("failed to write demo document")
	}
	defer os.Remove(document)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	queued, err := client.QueueFax(ctx, srfax.QueueFaxRequest{
		To:    []string{"+12125556789"},
		Files: []string{document},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("queue fax failed")
	}
	faxDetailID := queued.Text()
	log.Info().Str("fax_detail_id", faxDetailID).Msg("fax queued")

	status, err := client.GetFaxStatus(ctx, faxDetailID)
	if err != nil {
		log.Fatal().Err(err).Msg("get fax status failed")
	}
	var state srfax.FaxStatus
	if err := status.Decode(&state); err != nil {
		log.Fatal().Err(err).Msg("decode fax status failed")
	}
	log.Info().Str("sent_status", state.SentStatus).Int64("pages", state.Pages.Int64()).Msg("fax status")

	inbox, err := client.GetFaxInbox(ctx, "")
	if err != nil {
		log.Fatal().Err(err).Msg("get fax inbox failed")
	}
	var received []srfax.InboxFax
	if err := inbox.Decode(&received); err != nil {
		log.Fatal().Err(err).Msg("decode inbox failed")
	}
	log.Info().Int("faxes", len(received)).Msg("inbox listed")

	outbox, err := client.GetFaxOutbox(ctx, "")
	if err != nil {
		log.Fatal().Err(err).Msg("get fax outbox failed")
	}
	log.Info().Int("faxes", len(outbox.Records())).Msg("outbox listed")

	if len(received) == 0 {
		log.Fatal().Msg("inbox unexpectedly empty")
	}
	filename := received[0].FileName

	content, err := client.RetrieveFax(ctx, filename, srfax.DirectionInbound)
	if err != nil {
		log.Fatal().Err(err).Msg("retrieve fax failed")
	}
	data, err := content.Bytes()
	if err != nil {
		log.Fatal().Err(err).Msg("decode fax content failed")
	}
	log.Info().Str("filename", filename).Int("bytes", len(data)).Msg("fax retrieved")

	deleted, err := client.DeleteFax(ctx, srfax.DirectionInbound, filename)
	if err != nil {
		log.Fatal().Err(err).Msg("delete fax failed")
	}
	if !deleted.Empty() {
		log.Fatal().Str("kind", string(deleted.Kind())).Msg("delete returned unexpected payload")
	}
	log.Info().Str("filename", filename).Msg("fax deleted, all operations verified")
}
