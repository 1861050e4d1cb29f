// Command tracksync aligns independently clocked telemetry tracks onto a
// common time axis. A reference GNSS track (and optionally a platform pitch
// series) is correlated against the payload sensors given on the command
// line; results are printed as JSON and can be persisted to sqlite and
// rendered as an HTML report.
//
// Usage:
//
//	tracksync -ref flight.csv -gnss payload_gnss.csv
//	tracksync -ref flight.csv -ref-pitch pitch.csv -gimbal gimbal.csv -incl incl.csv \
//	    -db alignments.db -report session.html
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/skein-aero/tracksync/internal/align"
	"github.com/skein-aero/tracksync/internal/config"
	"github.com/skein-aero/tracksync/internal/payload"
	"github.com/skein-aero/tracksync/internal/report"
	"github.com/skein-aero/tracksync/internal/store"
	"github.com/skein-aero/tracksync/internal/trackio"
	"github.com/skein-aero/tracksync/internal/version"
)

func main() {
	var (
		refPath      = flag.String("ref", "", "reference position CSV (timestamp,lat,lon,alt), required")
		refPitchPath = flag.String("ref-pitch", "", "reference platform pitch CSV (timestamp,angle)")
		gnssPath     = flag.String("gnss", "", "payload GNSS position CSV to align")
		gimbalPath   = flag.String("gimbal", "", "gimbal pitch CSV to align")
		inclPath     = flag.String("incl", "", "inclinometer CSV to align (chained through gimbal pitch)")
		rateHz       = flag.Float64("rate", 0, "resample rate in Hz (0 = default)")
		maxLag       = flag.Float64("max-lag", 0, "correlation search window in seconds (0 = default)")
		configPath   = flag.String("config", "", "JSON tuning file overriding defaults")
		dbPath       = flag.String("db", "", "sqlite database to persist results into")
		reportPath   = flag.String("report", "", "HTML report output path")
		plotPrefix   = flag.String("plot", "", "PNG correlation plot path prefix (one file per stream)")
		showVersion  = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("tracksync %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *refPath == "" {
		flag.Usage()
		log.Fatal("missing required -ref flag")
	}
	if *gnssPath == "" && *gimbalPath == "" && *inclPath == "" {
		flag.Usage()
		log.Fatal("nothing to align: give at least one of -gnss, -gimbal, -incl")
	}

	cfg, err := buildConfig(*configPath, *rateHz, *maxLag, *reportPath != "" || *plotPrefix != "")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ref, pay, err := loadTracks(*refPath, *refPitchPath, *gnssPath, *gimbalPath, *inclPath)
	if err != nil {
		log.Fatalf("load tracks: %v", err)
	}

	session := payload.NewSession(ref, cfg)
	outcomes := session.AlignAll(pay)

	if *dbPath != "" {
		if err := persist(*dbPath, session.ID, outcomes); err != nil {
			log.Fatalf("persist: %v", err)
		}
	}
	if *reportPath != "" {
		if err := writeReport(*reportPath, session.ID, outcomes, cfg.RateHz); err != nil {
			log.Fatalf("report: %v", err)
		}
	}
	if *plotPrefix != "" {
		if err := writePlots(*plotPrefix, outcomes, cfg.RateHz); err != nil {
			log.Fatalf("plot: %v", err)
		}
	}

	if err := printOutcomes(session.ID, outcomes); err != nil {
		log.Fatalf("encode output: %v", err)
	}

	for _, o := range outcomes {
		if o.Err != nil {
			os.Exit(1)
		}
	}
}

// buildConfig resolves defaults, the optional tuning file, and command-line
// overrides, in that order.
func buildConfig(path string, rateHz, maxLag float64, wantDiagnostics bool) (align.Config, error) {
	cfg := align.DefaultConfig()
	if path != "" {
		tc, err := config.LoadTuningConfig(path)
		if err != nil {
			return align.Config{}, err
		}
		cfg = tc.Apply(cfg)
	}
	if rateHz > 0 {
		cfg.RateHz = rateHz
	}
	if maxLag > 0 {
		cfg.MaxLagSeconds = maxLag
	}
	if wantDiagnostics {
		cfg.CaptureDiagnostics = true
	}
	return cfg, nil
}

func loadTracks(refPath, refPitchPath, gnssPath, gimbalPath, inclPath string) (payload.Reference, payload.Payload, error) {
	var ref payload.Reference
	var pay payload.Payload

	pos, err := trackio.LoadPositionCSV(refPath)
	if err != nil {
		return ref, pay, err
	}
	ref.Position = pos

	if refPitchPath != "" {
		pitch, err := trackio.LoadAttitudeCSV(refPitchPath)
		if err != nil {
			return ref, pay, err
		}
		ref.Pitch = &pitch
	}
	if gnssPath != "" {
		gnss, err := trackio.LoadPositionCSV(gnssPath)
		if err != nil {
			return ref, pay, err
		}
		pay.GNSS = &gnss
	}
	if gimbalPath != "" {
		gimbal, err := trackio.LoadAttitudeCSV(gimbalPath)
		if err != nil {
			return ref, pay, err
		}
		pay.GimbalPitch = &gimbal
	}
	if inclPath != "" {
		incl, err := trackio.LoadAttitudeCSV(inclPath)
		if err != nil {
			return ref, pay, err
		}
		pay.Inclinometer = &incl
	}
	return ref, pay, nil
}

func persist(dbPath, sessionID string, outcomes map[string]payload.Outcome) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.MigrateUp(store.MigrationsFS()); err != nil {
		return err
	}
	for _, o := range outcomes {
		if o.Err != nil {
			continue // invalid-input outcomes are not data points
		}
		if _, err := db.RecordOutcome(sessionID, o); err != nil {
			return err
		}
	}
	return nil
}

func writeReport(path, sessionID string, outcomes map[string]payload.Outcome, rateHz float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return report.WriteSessionReport(f, sessionID, outcomes, rateHz)
}

func writePlots(prefix string, outcomes map[string]payload.Outcome, rateHz float64) error {
	for name, o := range outcomes {
		if o.Err != nil || len(o.Result.PerAxis) == 0 {
			continue
		}
		hasDiag := false
		for _, axis := range o.Result.PerAxis {
			if axis.Diagnostics != nil {
				hasDiag = true
				break
			}
		}
		if !hasDiag {
			continue
		}
		path := fmt.Sprintf("%s_%s.png", prefix, name)
		if err := report.SaveCorrelationPlot(path, name, o.Result, rateHz); err != nil {
			return err
		}
		log.Printf("wrote %s", path)
	}
	return nil
}

func printOutcomes(sessionID string, outcomes map[string]payload.Outcome) error {
	type output struct {
		SessionID string                     `json:"session_id"`
		Streams   map[string]payload.Outcome `json:"streams"`
		Errors    map[string]string          `json:"errors,omitempty"`
	}
	out := output{SessionID: sessionID, Streams: outcomes}
	for name, o := range outcomes {
		if o.Err != nil {
			if out.Errors == nil {
				out.Errors = make(map[string]string)
			}
			out.Errors[name] = o.Err.Error()
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
