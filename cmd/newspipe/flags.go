package main

import (
	"flag"
)

type AppFlags struct {
	GlobalConfigFile string
	WarcFile         string
	OutputDir        string
	Workers          int
}

func ParseFlags() AppFlags {
	globalConfigFile := flag.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("c", "", "Alias for -config")

	warcFile := flag.String("warc-file", "", "Path to a local WARC file to process instead of crawling the CC-NEWS index.")

	outputDir := flag.String("out", "", "Output directory for extracted articles (overrides config file if set)")
	outputDirAlias := flag.String("o", "", "Alias for -out")

	workers := flag.Int("workers", 0, "Extraction worker pool size (overrides config file if set; 0 means physical CPU count)")

	flag.Parse()

	flags := AppFlags{
		WarcFile: *warcFile,
		Workers:  *workers,
	}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if *outputDir != "" {
		flags.OutputDir = *outputDir
	} else if *outputDirAlias != "" {
		flags.OutputDir = *outputDirAlias
	}

	return flags
}
