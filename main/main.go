package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"runtime/pprof"
	"strings"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/goccp/io"
	"github.com/phil-mansfield/goccp/monitor"
	"github.com/phil-mansfield/goccp/reactions"
	"github.com/phil-mansfield/goccp/sim"
)

// FileGroup holds the files which must be closed when the run ends.
type FileGroup struct {
	log, prof *os.File
}

func (fg *FileGroup) Close() {
	if fg.log != nil {
		if err := fg.log.Close(); err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		if err := fg.prof.Close(); err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var run, exampleConfig string
	vars := map[string]*string{
		"Run":           &run,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&run, "Run", "",
		"Configuration file for [Simulation] mode. Files ending in .toml "+
			"are read as TOML, everything else as gcfg.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. Accepted arguments are 'Simulation' and 'Reactions'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Run":
		con, err := io.ReadSimulationConfig(run)
		if err != nil {
			log.Fatal(err.Error())
		}

		fg := &FileGroup{}
		err = simulationMain(con, fg)
		fg.Close()
		if err != nil {
			log.Fatal(err.Error())
		}

	case "ExampleConfig":
		switch exampleConfig {
		case "Simulation":
			fmt.Println(io.ExampleSimulationFile)
		case "Reactions":
			fmt.Println(strings.Join(reactions.Files(), "\n"))
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'Simulation' and 'Reactions'.",
			)
		}
	default:
		panic("Impossible")
	}
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but goccp "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func simulationMain(con *io.SimulationConfig, fg *FileGroup) error {
	var err error
	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			return err
		}
		log.SetOutput(fg.log)
	} else if con.Terminal {
		log.SetOutput(ioutil.Discard)
	}

	log.Println("Running Simulation main.")

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			return err
		}
		if err = pprof.StartCPUProfile(fg.prof); err != nil {
			return err
		}
	}

	s := sim.New(con)
	s.AddObserver(&sim.LogObserver{Interval: con.LogInterval})
	if con.ValidOutput() {
		s.AddObserver(&sim.Diagnostics{Dir: con.Output, Plot: con.Plot})
	}

	if con.ValidDatabase() {
		db, err := io.OpenRunDB(con.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		s.AddObserver(&sim.Recorder{DB: db})
	}

	if con.ValidMonitorAddr() {
		b := monitor.NewBroadcaster(con.LogInterval)
		defer b.Close()

		mux := http.NewServeMux()
		mux.Handle("/ws", b)
		server := &http.Server{Addr: con.MonitorAddr, Handler: mux}
		go func() {
			err := server.ListenAndServe()
			if err != nil && err != http.ErrServerClosed {
				log.Printf("Monitor server stopped: %s", err.Error())
			}
		}()
		defer server.Close()

		log.Printf("Streaming snapshots to ws://%s/ws", con.MonitorAddr)
		s.AddObserver(b)
	}

	if con.Terminal {
		term, err := monitor.NewTerminal(nil, con.LogInterval)
		if err != nil {
			return err
		}
		defer term.Close()
		s.AddObserver(term)
	}

	if err := s.Run(); err != nil {
		return err
	}

	if con.Plot {
		log.Println("Drawing profile plots.")
		plt.Execute()
	}
	return nil
}
