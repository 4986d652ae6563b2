package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/trezcool/zoezi/apps/api/echo"
	"github.com/trezcool/zoezi/core"
	"github.com/trezcool/zoezi/core/correction"
	"github.com/trezcool/zoezi/core/student"
	"github.com/trezcool/zoezi/core/unit"
	"github.com/trezcool/zoezi/services/email"
	"github.com/trezcool/zoezi/services/logger"
	"github.com/trezcool/zoezi/storage/blob"
	"github.com/trezcool/zoezi/storage/database"
	"github.com/trezcool/zoezi/storage/database/sqlx"
)

func main() {
	errAndDie(core.LoadConf())

	std := log.New(os.Stdout, core.Conf.AppName+" - ", log.LstdFlags|log.Lshortfile)
	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, &core.Conf)
	}

	// set up DB
	errAndDie(database.CreateIfNotExist(&core.Conf))
	db, err := database.Open(&core.Conf)
	errAndDie(err)
	defer func() { _ = db.Close() }()
	errAndDie(database.Migrate(db.DB))

	// set up blob store
	blobs, err := blob.NewFileStore(core.Conf.CorrectionsPath)
	errAndDie(err)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	studentSvc := student.NewService(sqlxrepos.NewStudentRepository(db))
	unitSvc := unit.NewService(sqlxrepos.NewUnitRepository(db))
	correctionSvc := correction.NewService(sqlxrepos.NewCorrectionRepository(db), blobs, unitSvc, mailSvc)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:          core.Conf.Server.Addr,
			Logger:        logger,
			StudentSvc:    studentSvc,
			UnitSvc:       unitSvc,
			CorrectionSvc: correctionSvc,
		},
	)

	// graceful shutdown on SIGINT/SIGTERM
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Server.ShutdownTimeout)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			logger.Error("stopping server: " + err.Error())
		}
	}()

	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
