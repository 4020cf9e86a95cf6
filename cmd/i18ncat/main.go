// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Command i18ncat loads one or more catalog YAML files - each a top-level
map of locale -> (flat or nested) template tree, the same shape
Engine.AddTranslations accepts - and either validates them or looks up a
single key, for use in CI or by hand while authoring translations.

Usage:

	i18ncat validate catalog/*.yaml
	i18ncat lookup --locale fr-FR --key howdy catalog/*.yaml
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/brightlocale/i18ntree/catalog"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "validate":
		runValidate(os.Args[2:])
	case "lookup":
		runLookup(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: i18ncat validate <file.yaml>...")
	fmt.Fprintln(os.Stderr, "       i18ncat lookup --locale <tag> --key <key> <file.yaml>...")
}

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)

	if err := fs.Parse(args); err != nil {
		log.Fatal().Err(err).Msg("i18ncat: failed to parse flags")
	}

	files := fs.Args()
	if len(files) == 0 {
		log.Fatal().Msg("i18ncat: validate requires at least one catalog file")
	}

	cat := catalog.New()

	total := 0

	for _, path := range files {
		locales, count, err := loadCatalogFile(cat, path)
		if err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("i18ncat: invalid catalog file")
		}

		total += count

		log.Info().Str("file", path).Strs("locales", locales).Int("keys", count).Msg("loaded catalog file")
	}

	log.Info().Int("files", len(files)).Int("totalKeys", total).Msg("validation succeeded")
}

func runLookup(args []string) {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)

	locale := fs.String("locale", "", "locale tag to look up")
	key := fs.String("key", "", "dotted key to look up")

	if err := fs.Parse(args); err != nil {
		log.Fatal().Err(err).Msg("i18ncat: failed to parse flags")
	}

	if *locale == "" || *key == "" {
		log.Fatal().Msg("i18ncat: lookup requires --locale and --key")
	}

	files := fs.Args()
	if len(files) == 0 {
		log.Fatal().Msg("i18ncat: lookup requires at least one catalog file")
	}

	cat := catalog.New()

	for _, path := range files {
		if _, _, err := loadCatalogFile(cat, path); err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("i18ncat: invalid catalog file")
		}
	}

	template, ok := cat.Lookup(*locale, *key)
	if !ok {
		log.Fatal().Str("locale", *locale).Str("key", *key).Msg("i18ncat: key not found")
	}

	fmt.Println(template)
}

// loadCatalogFile reads a locale -> template-tree YAML file into cat and
// returns the locales it contributed and the total number of leaf keys
// across them.
func loadCatalogFile(cat *catalog.Catalog, path string) (locales []string, leafCount int, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}

	var doc map[string]map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, 0, fmt.Errorf("parse %s: %w", path, err)
	}

	for locale, templates := range doc {
		cat.Add(locale, templates)
		locales = append(locales, locale)
		leafCount += countLeaves(templates)
	}

	return locales, leafCount, nil
}

// countLeaves counts the leaves (every non-map value) of a (possibly nested)
// template tree.
func countLeaves(tree map[string]any) int {
	count := 0

	for _, v := range tree {
		if nested, ok := v.(map[string]any); ok {
			count += countLeaves(nested)

			continue
		}

		count++
	}

	return count
}
