// Command gbank-seed publishes the JSON snapshot directory onto the
// records exchange as record.upsert and ledger.touched events, so a
// local worker can be driven end to end without the real ledger
// backend.
package main

import (
	"context"
	"os"
	"time"

	"gbank/internal/amqp"
	"gbank/internal/backend/memory"
	"gbank/internal/cli"
	applog "gbank/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snapshot := memory.NewFromFiles(cfg.DataDirectory)
	published := 0

	publish := func(ev amqp.Event) {
		if err := client.Publish(ctx, ev); err != nil {
			logger.Error("Failed to publish event", "kind", ev.Kind, "error", err)
			os.Exit(1)
		}
		published++
	}

	customers, _ := snapshot.ListCustomers(ctx)
	for _, c := range customers {
		ev, err := amqp.NewRecordUpsertEvent("customers", c)
		if err != nil {
			logger.Error("Failed to build customer event", "id", c.ID, "error", err)
			os.Exit(1)
		}
		publish(ev)
	}

	accounts, _ := snapshot.ListAccounts(ctx)
	for _, a := range accounts {
		ev, err := amqp.NewRecordUpsertEvent("accounts", a)
		if err != nil {
			logger.Error("Failed to build account event", "account_number", a.AccountNumber, "error", err)
			os.Exit(1)
		}
		publish(ev)
	}

	loans, _ := snapshot.ListLoans(ctx)
	for _, l := range loans {
		ev, err := amqp.NewRecordUpsertEvent("loans", l)
		if err != nil {
			logger.Error("Failed to build loan event", "id", l.ID, "error", err)
			os.Exit(1)
		}
		publish(ev)
	}

	for userID, txs := range snapshot.AllTransactions() {
		ev, err := amqp.NewLedgerTouchedEvent(userID, txs)
		if err != nil {
			logger.Error("Failed to build ledger event", "user_id", userID, "error", err)
			os.Exit(1)
		}
		publish(ev)
	}

	logger.Info("Seed events published",
		"events", published,
		"data_directory", cfg.DataDirectory,
		"exchange", cfg.AMQPExchange)
}
