// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/ezrec/mepa/listing"
	"github.com/ezrec/mepa/repl"
	"github.com/ezrec/mepa/vm"
)

// envInt returns the integer value of an environment variable, or def.
func envInt(name string, def int) int {
	text, ok := os.LookupEnv(name)
	if !ok {
		return def
	}

	value, err := strconv.Atoi(text)
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}

	return value
}

// envBool returns the boolean value of an environment variable, or def.
func envBool(name string, def bool) bool {
	text, ok := os.LookupEnv(name)
	if !ok {
		return def
	}

	value, err := strconv.ParseBool(text)
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}

	return value
}

func main() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf(".env: %v", err)
	}

	var load string
	var run bool
	var pageSize int
	var maxSteps int
	var verbose bool

	flag.StringVar(&load, "l", "", ".mepa file to load")
	flag.BoolVar(&run, "r", false, "Run the loaded file and exit")
	flag.IntVar(&pageSize, "p", envInt("MEPA_PAGE_SIZE", repl.PAGE_SIZE), "LIST page size")
	flag.IntVar(&maxSteps, "n", envInt("MEPA_MAX_STEPS", 0), "Instruction limit of a run, 0 is unlimited")
	flag.BoolVar(&verbose, "v", envBool("MEPA_VERBOSE", false), "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if run {
		if len(load) == 0 {
			log.Fatalf("%v: -r requires -l", os.Args[0])
		}

		buf := &listing.Buffer{Verbose: verbose}
		err := buf.LoadFile(load)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}

		m := vm.NewMachine(buf.Program())
		m.Output = os.Stdout
		m.Verbose = verbose

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		_, err = m.RunContext(ctx, maxSteps)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
		return
	}

	r := repl.NewRepl(os.Stdin, os.Stdout)
	r.Verbose = verbose
	r.PageSize = pageSize
	r.MaxSteps = maxSteps

	if len(load) != 0 {
		err := r.Buffer.LoadFile(load)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
	}

	err = r.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}
