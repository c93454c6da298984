package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stlog "log" // standard log for errors before the logger is ready
	"os"

	"github.com/bethropolis/qat-editor/internal/app"
	"github.com/bethropolis/qat-editor/internal/config"
	"github.com/bethropolis/qat-editor/internal/highlighter/lang"
	"github.com/bethropolis/qat-editor/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := &config.Flags{}
	args, err := flags.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		stlog.Printf("Error parsing flags: %v", err)
		return 2
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.AppVersion)
		return 0
	}

	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, flags)
	if cfgErr != nil && !errors.Is(cfgErr, config.ErrUnknownKeys) {
		stlog.Printf("Error loading configuration: %v", cfgErr)
		return 1
	}

	logOutput, closeLog, err := logger.Open(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Printf("Error: %v", err)
		return 1
	}
	defer closeLog()
	logger.Init(cfg.Logger, logOutput)
	logger.SetDebugFilter(*flags.DebugLog)

	if cfgErr != nil {
		logger.Warnf("%v", cfgErr)
	}
	logger.Infof("Starting %s %s", config.AppName, config.AppVersion)

	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
		logger.Debugf("File path specified: %s", filePath)
	}

	registry := lang.NewRegistry()
	qat, closeGrammar, err := lang.OpenQat(cfg.Grammar.Library, cfg.Grammar.Symbol)
	if err != nil {
		logger.Warnf("qat highlighting disabled: %v", err)
	} else {
		defer closeGrammar()
		registry.Register(qat)
	}
	language := registry.GetForFile(filePath)

	if *flags.Dump {
		return dump(language, filePath, cfg.Highlight.Strict, err)
	}

	editor, err := app.New(app.Options{
		FilePath: filePath,
		Config:   cfg,
		Language: language,
	})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		stlog.Printf("Error: %v", err)
		return 1
	}
	if err := editor.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return 1
	}

	logger.Infof("%s finished", config.AppName)
	return 0
}

// dump prints the highlight spans of filePath. grammarErr explains a missing
// language.
func dump(language *lang.Language, filePath string, strict bool, grammarErr error) int {
	if filePath == "" {
		stlog.Printf("Error: -dump needs a file")
		return 2
	}
	if language == nil {
		if grammarErr != nil {
			stlog.Printf("Error: %v", grammarErr)
		} else {
			stlog.Printf("Error: no language for %s", filePath)
		}
		return 1
	}
	if err := app.Dump(context.Background(), os.Stdout, language, filePath, strict); err != nil {
		logger.Errorf("dump failed: %v", err)
		stlog.Printf("Error: %v", err)
		return 1
	}
	return 0
}
