// Copyright 2026 The Suggestd Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the correction server and CLI [DBG] application.

Suggestd provides proximity-aware typing correction over a precompiled
binary trie dictionary. It can operate as a MessagePack IPC server for
integration with input methods, or as a CLI application for testing and
debugging.

Corrections combine the keyboard's spatial proximity grid with a
budgeted fuzzy trie walk: substitutions, omissions, insertions and
transpositions, plus locale digraphs, multi-word splits and bigram
reranking against the previously committed word.

# Usage

Start the server with a dictionary file:

	suggestd -dict main.dict

Run in CLI mode with a demo dictionary and debug logging:

	suggestd -c -demo -d

# Configuration

Runtime configuration is managed through a TOML file with server,
search and keyboard sections:

	[server]
	max_limit = 18
	max_input_length = 48

	[search]
	max_errors = 2
	max_splits = 2

	[keyboard]
	locale = "en"

The config file is automatically created with defaults if it doesn't
exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. See the
server package docs for the message shapes.

Send a correction request:

	{"id": "req1", "action": "suggest", "w": "gello", "prev": "well"}

Receive ranked suggestions with timing information:

	{"id": "req1", "s": [{"w": "hello", "r": 1, "s": 812}], "c": 1, "t": 145}

# Command Line Flags

The following flags control application behavior:

	-dict string
	    Path to the binary dictionary file
	-demo
	    Build a small in-memory demo dictionary instead of loading one
	-locale string
	    Keyboard locale for proximity and digraph rules
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return (default from config)
	-full
	    Allow substitutions outside the proximity sets
	-config string
	    Custom config file path
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/internal/cli"
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/internal/qwerty"
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/config"
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/dict"
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/keyboard"
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/server"
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/suggest"
)

const (
	Version = "0.3.0-beta"
	AppName = "suggestd"
	gh      = "https://github.com/mrgatesjunior/packages-inputmethods-LatinIME"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", "", "Path to the binary dictionary file")
	demoDict := flag.Bool("demo", false, "Build a small in-memory demo dictionary")
	locale := flag.String("locale", "", "Keyboard locale (overrides config)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 0, "Number of suggestions to return (overrides config)")
	fullEdit := flag.Bool("full", false, "Allow substitutions outside the proximity sets")
	configPath := flag.String("config", "", "Custom config file path")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	// stdout carries the IPC stream
	log.SetOutput(os.Stderr)

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if activePath != "" {
		log.Debugf("Using config file: (%s)", activePath)
	}
	if *locale != "" {
		appConfig.Keyboard.Locale = *locale
	}
	if *limit > 0 {
		appConfig.Server.MaxLimit = *limit
	}

	store, err := openStore(*dictPath, *demoDict)
	if err != nil {
		log.Fatalf("Failed to open dictionary: %v", err)
	}
	log.Debugf("Dictionary loaded: %d bytes, char width %d", store.Size(), store.CharWidth())

	prox, err := keyboard.New(qwerty.Params(appConfig.Keyboard.Locale, appConfig.Keyboard.MaxProximityChars))
	if err != nil {
		log.Fatalf("Failed to build keyboard index: %v", err)
	}

	userDict := suggest.NewUserDictionary()
	searcher := suggest.NewSearcher(store, appConfig.SearchOptions())
	searcher.SetUserDictionary(userDict)

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(searcher, store, prox, appConfig.Server.MaxLimit, *fullEdit)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(searcher, store, prox, userDict,
		appConfig.Server.MaxLimit, appConfig.Server.MaxInputLength,
		*fullEdit || appConfig.Server.FullEditDistance,
		os.Stdin, os.Stdout)

	showStartupInfo(*dictPath, *demoDict)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openStore loads the dictionary file, or builds the demo dictionary when
// requested without a path.
func openStore(path string, demo bool) (*dict.Store, error) {
	if path != "" {
		return dict.ReadFile(path)
	}
	if !demo {
		return nil, fmt.Errorf("no dictionary: pass -dict <file> or -demo")
	}
	return buildDemoStore()
}

// demo vocabulary, enough to exercise corrections, splits and bigrams.
var demoWords = []struct {
	word string
	freq int
}{
	{"a", 255}, {"and", 240}, {"the", 250}, {"this", 210},
	{"hello", 200}, {"help", 180}, {"held", 90},
	{"world", 190}, {"word", 150}, {"work", 170},
	{"good", 200}, {"morning", 160}, {"monthly", 120},
	{"lot", 140}, {"there", 180}, {"then", 170},
}

var demoBigrams = []struct {
	from, to string
	weight   int
}{
	{"hello", "world", 10}, {"good", "morning", 14}, {"a", "lot", 12},
}

func buildDemoStore() (*dict.Store, error) {
	b := dict.NewBuilder()
	for _, w := range demoWords {
		if err := b.AddWord(w.word, w.freq); err != nil {
			return nil, err
		}
	}
	for _, bg := range demoBigrams {
		b.AddBigram(bg.from, bg.to, bg.weight)
	}
	data, width, err := b.Build()
	if err != nil {
		return nil, err
	}
	return dict.NewStore(data, width)
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()

	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["version"] = lipgloss.NewStyle().
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})

	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ Suggestd ] Proximity-aware typing corrections!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dictPath string, demo bool) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	source := dictPath
	if source == "" && demo {
		source = "demo dictionary"
	}

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, " Suggestd ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("dictionary: ( %s )", source)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
