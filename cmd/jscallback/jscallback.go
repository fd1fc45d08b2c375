// jscallback prints the Javascript that delivers a payload to a webview callback.
//
// The payload (JSON by default, or YAML with -yaml) is taken from the first argument,
// or read from stdin if no argument is given:
//
//	jscallback -name=_jscb_..._ok '{"value": 1}'
//	echo '"disk full"' | jscallback -failure -name=... -error_name=...
//
// Use -check to run the generated script in an embedded Javascript engine and see which
// callback it calls.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/janpfeifer/jscallback/internal/jseval"
	"github.com/janpfeifer/jscallback/internal/version"
	"github.com/janpfeifer/jscallback/rpc"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

var (
	flagName      = flag.String("name", "", "Name of the callback called on success.")
	flagErrorName = flag.String("error_name", "", "Name of the callback called on failure. Required with -failure.")
	flagFailure   = flag.Bool("failure", false, "The payload is the failure value of the operation, delivered to -error_name.")
	flagYaml      = flag.Bool("yaml", false, "Parse the payload as YAML instead of JSON.")
	flagNames     = flag.Bool("names", false, "Print a new pair of success/failure callback names and exit.")
	flagCheck     = flag.Bool("check", false, "Run the generated script in an embedded Javascript engine and report which callback it calls.")
	flagStrict    = flag.Bool("strict", false, "Only accept callback names created with -names.")

	flagShortVersion = flag.Bool("V", false, "Print version information")
	flagLongVersion  = flag.Bool("version", false, "Print detailed version information")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	if *flagShortVersion {
		fmt.Println(version.Get())
		return
	}
	if *flagLongVersion {
		version.Get().Print(os.Stdout)
		return
	}
	if *flagNames {
		success, failure := rpc.NewCallbackNames()
		fmt.Println(success)
		fmt.Println(failure)
		return
	}
	if len(flag.Args()) > 1 {
		_, _ = fmt.Fprintf(os.Stderr, "At most one payload argument is allowed (passed %q). Use --help for more information.\n", flag.Args())
		os.Exit(1)
	}

	var payload []byte
	if len(flag.Args()) == 1 {
		payload = []byte(flag.Arg(0))
	} else {
		payload = must.M1(io.ReadAll(os.Stdin))
	}
	cfg := &config{
		SuccessName: *flagName,
		ErrorName:   *flagErrorName,
		Failure:     *flagFailure,
		Yaml:        *flagYaml,
		Strict:      *flagStrict,
	}
	js, err := cfg.Script(payload)
	if err != nil {
		klog.Errorf("%+v", err)
		_, _ = fmt.Fprintf(os.Stderr, "jscallback: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(js)

	if *flagCheck {
		report, err := jseval.Run(context.Background(), js, cfg.SuccessName, cfg.ErrorName)
		if err != nil {
			klog.Fatalf("Generated script failed to run: %+v", err)
		}
		printReport(os.Stderr, report)
	}
}

// config holds what is needed to turn a payload into a callback script.
type config struct {
	SuccessName, ErrorName string
	Failure, Yaml, Strict  bool
}

func (c *config) validate() error {
	if c.SuccessName == "" && !c.Failure {
		return errors.New("-name must be set")
	}
	if c.ErrorName == "" && c.Failure {
		return errors.New("-error_name must be set with -failure")
	}
	if c.Strict {
		for _, name := range []string{c.SuccessName, c.ErrorName} {
			if name != "" && !rpc.IsCallbackName(name) {
				return errors.Errorf("callback name %q was not created with -names", name)
			}
		}
	}
	return nil
}

// Script parses the payload and returns the callback script.
func (c *config) Script(payload []byte) (string, error) {
	if err := c.validate(); err != nil {
		return "", err
	}
	value, err := parsePayload(payload, c.Yaml)
	if err != nil {
		return "", err
	}
	result := rpc.Ok[rpc.Value, rpc.Value](value)
	if c.Failure {
		result = rpc.Err[rpc.Value, rpc.Value](value)
	}
	return rpc.FormatCallbackResult(result, c.SuccessName, c.ErrorName)
}

// parsePayload converts a JSON or YAML document to an rpc.Value.
func parsePayload(payload []byte, isYaml bool) (rpc.Value, error) {
	if !isYaml {
		return rpc.RawValue(payload)
	}
	var doc any
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return rpc.Value{}, errors.Wrap(err, "failed to parse YAML payload")
	}
	klog.V(2).Infof("YAML payload decoded as %T", doc)
	return rpc.ToValue(doc)
}

func printReport(w io.Writer, report *jseval.Report) {
	for _, call := range report.Calls {
		_, _ = fmt.Fprintf(w, "%s %s(%v)\n", color.New(color.FgGreen).Sprint("called"), call.Callback, call.Args)
	}
	for _, warning := range report.Warnings {
		_, _ = fmt.Fprintf(w, "%s %s\n", color.New(color.FgYellow).Sprint("warning"), warning)
	}
	if len(report.Calls) == 0 && len(report.Warnings) == 0 {
		_, _ = fmt.Fprintln(w, color.New(color.FgRed).Sprint("nothing happened"))
	}
}
