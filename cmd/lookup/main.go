// Command lookup translates phrases from the command line.
//
// Usage:
//
//	lookup [-tl fr] [-quiet] phrase...
//	lookup -check [-tl fr]
//
// With -check it only probes the translation service. Exit codes: 0 =
// success (or online), 1 = error (or offline).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pricofy/translation-lookup/internal/config"
	"github.com/pricofy/translation-lookup/internal/domain"
	"github.com/pricofy/translation-lookup/internal/logger"
	"github.com/pricofy/translation-lookup/internal/router"
	"github.com/pricofy/translation-lookup/internal/sanitize"
	"github.com/pricofy/translation-lookup/internal/translator"
)

func main() {
	target := flag.String("tl", "", "target language (defaults to TRANSLATE_TARGET_LANG)")
	quiet := flag.Bool("quiet", false, "print nothing for failed lookups instead of a placeholder")
	check := flag.Bool("check", false, "only check connectivity to the translation service")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	tl := *target
	if tl == "" {
		tl = cfg.Translate.TargetLang
	}
	route, err := router.New().Resolve(tl)
	if err != nil {
		log.Error("resolve target language", slog.String("error", err.Error()))
		os.Exit(1)
	}

	client := translator.NewClient(cfg.Translate, sanitize.StripMarkup, log)
	ctx := context.Background()

	if *check {
		if !client.CheckConnectivity(ctx, route.Target) {
			fmt.Println("offline")
			os.Exit(1)
		}
		fmt.Println("online")
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	for _, phrase := range flag.Args() {
		res, err := client.Translate(ctx, phrase, translator.Options{TargetLang: route.Target, Quiet: *quiet})
		if err != nil {
			log.Error("translate", slog.String("phrase", phrase), slog.String("error", err.Error()))
			os.Exit(1)
		}
		printResult(phrase, res)
	}
}

func printResult(phrase string, res *domain.Result) {
	fmt.Println(phrase)
	if res == nil {
		fmt.Println("  (no suggestion)")
		return
	}
	for _, e := range res.Entries {
		line := e.String()
		if len(e.Words) > 0 && e.Words[0].Hint == domain.HintMuted {
			line = "(" + strings.Trim(line, "[]") + ")"
		}
		fmt.Println("  " + line)
	}
}
