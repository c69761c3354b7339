package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/limaJavier/labscheduling/internal/registry"
	"github.com/limaJavier/labscheduling/pkg/csvio"
	"github.com/limaJavier/labscheduling/pkg/model"
	"go.uber.org/zap"
)

func main() {
	config, err := LoadConfig()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	logger, err := newLogger(config.LogLevel)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer logger.Sync()

	shape := model.DefaultWeekShape()
	if config.WeekConfig != "" {
		if shape, err = model.LoadWeekShape(config.WeekConfig); err != nil {
			logger.Fatal("cannot load week shape", zap.Error(err))
		}
	}

	courses := registry.New(shape, logger)
	if config.CoursesFile != "" {
		if err := seedRegistry(courses, config.CoursesFile); err != nil {
			logger.Fatal("cannot seed course registry", zap.Error(err))
		}
	}

	app := newApp(newServer(courses, config.BaseWeekDate, logger))

	// Start server non-blocking
	go func() {
		logger.Info("listening", zap.String("port", config.Port))
		if err := app.Listen("0.0.0.0:" + config.Port); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func seedRegistry(courses registry.Registry, path string) error {
	var raws []model.RawCourse
	var err error
	if isCsv(path) {
		raws, err = csvio.LoadCourses(path, ',')
	} else {
		var file *os.File
		if file, err = os.Open(path); err != nil {
			return err
		}
		defer file.Close()
		raws, err = model.RawCoursesFromReader(file)
	}
	if err != nil {
		return err
	}
	return registry.Seed(courses, raws)
}
