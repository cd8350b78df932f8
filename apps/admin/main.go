package main

import (
	"log"
	"os"

	"github.com/trezcool/userql/core"
	logsvc "github.com/trezcool/userql/services/logger"
	"github.com/trezcool/userql/storage/database"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	database.SetMigrationLogger(logger)

	cli := &commandLine{conf: conf}
	defer cli.close()

	if err := newRootCmd(cli).Execute(); err != nil {
		cli.close()
		os.Exit(1)
	}
}
