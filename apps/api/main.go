package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pekotaker/student-management-be/apps/api/echo"
	"github.com/Pekotaker/student-management-be/core"
	"github.com/Pekotaker/student-management-be/core/school"
	"github.com/Pekotaker/student-management-be/core/user"
	"github.com/Pekotaker/student-management-be/services/email"
	"github.com/Pekotaker/student-management-be/services/logger"
	"github.com/Pekotaker/student-management-be/storage/database"
	"github.com/Pekotaker/student-management-be/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatal(err)
	}

	var appLogger core.Logger
	if conf.Debug {
		appLogger = core.NewStdLogger(std)
	} else {
		appLogger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		appLogger.Fatal("opening database", err)
	}
	defer func() { _ = db.Close() }()

	if err = database.Migrate(db); err != nil {
		appLogger.Fatal("migrating database", err)
	}

	// set up repos & services
	usrRepo := sqlxrepos.NewUserRepository(db)
	admRepo := sqlxrepos.NewAdminRepository(db)
	schRepo := sqlxrepos.NewSchoolRepository(db)

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf)
	}
	usrSvc := user.NewService(usrRepo, admRepo, mailSvc)
	schoolSvc := school.NewService(schRepo, usrRepo)

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Conf:      conf,
		Logger:    appLogger,
		UserSvc:   usrSvc,
		SchoolSvc: schoolSvc,
	})

	serverErrors := make(chan error, 1)
	go func() { serverErrors <- app.Start() }()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err = <-serverErrors:
		appLogger.Fatal("server error", err)
	case sig := <-shutdown:
		appLogger.Info("shutdown started", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err = app.Stop(ctx); err != nil {
			appLogger.Error("graceful shutdown failed", err)
		}
	}
}
