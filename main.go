// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The dlsearch executable extends the dynamic library search path of the
// process with directories bundled with an application and reports how
// library names resolve against it. With -run, it executes a command with
// the extended library search environment.
//
// Usage:
//
//	dlsearch [flags] name...
//	dlsearch [flags] -run [--] command [args...]
//
// Each name is reported as a JSON object on a line of standard output.
// Additional search directories are taken from the config file,
// $XDG_CONFIG_HOME/dlsearch/config.toml by default, followed by -path
// flags. Relative directories are relative to the directory holding
// the executable.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/kortschak/dlsearch/dl"
	"github.com/kortschak/dlsearch/internal/config"
	"github.com/kortschak/dlsearch/internal/libenv"
	"github.com/kortschak/dlsearch/internal/slogext"
	"github.com/kortschak/dlsearch/internal/version"
	"github.com/kortschak/dlsearch/internal/xdg"
	"github.com/kortschak/dlsearch/resolve"
)

// Exit status codes.
const (
	success       = 0
	internalError = 1 << (iota - 1)
	invocationError
)

func main() { os.Exit(Main()) }

func Main() int {
	cfgPath := flag.String("config", "", "path to config file (default $XDG_CONFIG_HOME/"+config.Name+")")
	var paths pathList
	flag.Var(&paths, "path", "additional library search directory (may be repeated)")
	ext := flag.String("ext", "", "library file extension (default "+resolve.Ext+")")
	load := flag.Bool("load", false, "load uniquely resolved libraries")
	run := flag.Bool("run", false, "run the command in the arguments with the extended search path")
	env := flag.Bool("env", false, "print the library search environment variable")
	logging := flag.String("log", "", "logging level (debug, info, warn or error, default info)")
	lines := flag.Bool("lines", false, "display source line details in logs")
	v := flag.Bool("version", false, "print version and exit")
	flag.Parse()
	if *v {
		err := version.Print(os.Stdout)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return internalError
		}
		return success
	}
	if flag.NArg() == 0 && !*env {
		flag.Usage()
		return invocationError
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return invocationError
	}

	var level slog.LevelVar
	if *logging != "" {
		err = level.UnmarshalText([]byte(*logging))
		if err != nil {
			flag.Usage()
			return invocationError
		}
	} else {
		l, ok, err := cfg.Level()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return invocationError
		}
		if ok {
			level.Set(l)
		}
	}
	addSource := *lines
	if cfg.AddSource != nil && !isSet("lines") {
		addSource = *cfg.AddSource
	}
	log := slogext.New(os.Stderr, &slogext.HandlerOptions{
		Level:     &level,
		AddSource: slogext.NewAtomicBool(addSource),
	}).With(slog.String("component", "dlsearch"))
	ctx := context.Background()

	var opts []resolve.Option
	switch {
	case *ext != "":
		opts = append(opts, resolve.WithExtension(*ext))
	case cfg.Extension != nil:
		opts = append(opts, resolve.WithExtension(*cfg.Extension))
	}
	r, err := resolve.Setup(log, append(cfg.Paths, paths...), opts...)
	if err != nil {
		log.LogAttrs(ctx, slog.LevelError, err.Error())
		return internalError
	}

	if *env {
		err = json.NewEncoder(os.Stdout).Encode(struct {
			Var   string   `json:"var"`
			Paths []string `json:"paths"`
		}{
			Var:   libenv.Var,
			Paths: libenv.List(libenv.Var),
		})
		if err != nil {
			log.LogAttrs(ctx, slog.LevelError, err.Error())
			return internalError
		}
		if flag.NArg() == 0 {
			return success
		}
	}

	if *run {
		return runCommand(ctx, log, flag.Args())
	}

	status := success
	enc := json.NewEncoder(os.Stdout)
	for _, name := range flag.Args() {
		rep := report{Result: r.Lookup(name)}
		rep.Status = rep.Result.Status()
		err := rep.Result.Err()
		if err == nil && *load {
			var lib *dl.Lib
			lib, err = dl.Open(dl.RTLD_NOW, name)
			if err == nil {
				rep.Loaded = lib.Name()
				err = lib.Close()
			}
		}
		if err != nil {
			rep.Error = err.Error()
			status = internalError
		}
		err = enc.Encode(rep)
		if err != nil {
			log.LogAttrs(ctx, slog.LevelError, err.Error())
			return internalError
		}
	}
	return status
}

// report is the JSON report for a requested library name.
type report struct {
	resolve.Result
	Status resolve.Status `json:"status"`
	Loaded string         `json:"loaded,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// loadConfig loads the config at path, or from the XDG config directories
// if path is empty. A missing default config is not an error.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		var err error
		path, err = xdg.Config(config.Name, false)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return &config.Config{}, nil
			}
			return nil, err
		}
	}
	return config.Load(path)
}

// runCommand runs args with the process environment, returning the
// command's exit status.
func runCommand(ctx context.Context, log *slog.Logger, args []string) int {
	if len(args) == 0 {
		flag.Usage()
		return invocationError
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	log.LogAttrs(ctx, slog.LevelDebug, "run", slog.Any("args", args))
	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		log.LogAttrs(ctx, slog.LevelError, err.Error())
		return internalError
	}
	return success
}

// isSet returns whether the named flag was set on the command line.
func isSet(name string) bool {
	var set bool
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// pathList is a repeatable flag.Value.
type pathList []string

func (p *pathList) String() string {
	return strings.Join(*p, string(os.PathListSeparator))
}

func (p *pathList) Set(s string) error {
	if s == "" {
		return errors.New("empty path")
	}
	*p = append(*p, s)
	return nil
}
