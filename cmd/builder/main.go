package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medigate/clinic-navigator/internal/adapters/dataset"
	"github.com/medigate/clinic-navigator/internal/infrastructure/observability"
)

func main() {
	var masterPath string
	var hoursPath string
	var outputPath string

	flag.StringVar(&masterPath, "master", "input/facility.csv", "Facility master CSV")
	flag.StringVar(&hoursPath, "hours", "input/dept_hours.csv", "Department reception hours CSV")
	flag.StringVar(&outputPath, "out", "output/clinics_merged.csv", "Merged output CSV")
	flag.Parse()

	observability.InitLogger("clinic-navigator-builder", os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	start := time.Now()

	master, err := dataset.ReadTable(masterPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", masterPath).Msg("Failed to read facility master")
	}
	log.Info().Int("rows", len(master.Rows)).Str("path", masterPath).Msg("Facility master loaded")

	hours, err := dataset.ReadTable(hoursPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", hoursPath).Msg("Failed to read department hours")
	}
	log.Info().Int("rows", len(hours.Rows)).Str("path", hoursPath).Msg("Department hours loaded")

	merged, err := dataset.Merge(master, hours)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to merge dataset")
	}

	if err := dataset.WriteTable(outputPath, merged); err != nil {
		log.Fatal().Err(err).Str("path", outputPath).Msg("Failed to write merged dataset")
	}

	log.Info().
		Int("clinics", len(merged.Rows)).
		Str("path", outputPath).
		Dur("duration", time.Since(start)).
		Msg("Merged dataset written")
}
