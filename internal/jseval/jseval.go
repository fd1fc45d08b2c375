// Package jseval runs callback scripts in an embedded Javascript engine that mimics the
// parts of a webview they rely on: a `window` global, registered callback functions and
// `console`.
//
// It records what the script did instead of doing anything, so one can check which callback
// was called with which arguments. It's used by the tests and by `jscallback -check`.
package jseval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Timeout is the maximum time a script is allowed to run.
var Timeout = time.Second

// Call records one call to a registered callback.
type Call struct {
	Callback string
	Args     []any
}

// Report of the execution of a script.
type Report struct {
	// Calls to registered callbacks, in order.
	Calls []Call

	// Warnings holds the messages passed to `console.warn`.
	Warnings []string

	// Logs holds the messages passed to `console.log`.
	Logs []string
}

// Called returns whether the callback with the given name was called.
func (r *Report) Called(name string) bool {
	for _, c := range r.Calls {
		if c.Callback == name {
			return true
		}
	}
	return false
}

// Run executes script after registering a recording function for each of the callbacks names.
//
// It returns an error if the script fails to parse, throws or runs for longer than Timeout (or
// until ctx is done, if earlier).
func Run(ctx context.Context, script string, callbacks ...string) (*Report, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	report := &Report{}
	vm := goja.New()
	global := vm.GlobalObject()
	if err := vm.Set("window", global); err != nil {
		return nil, errors.Wrap(err, "failed to define window")
	}
	console := vm.NewObject()
	if err := console.Set("warn", recordMessages(&report.Warnings)); err != nil {
		return nil, errors.Wrap(err, "failed to define console.warn")
	}
	if err := console.Set("log", recordMessages(&report.Logs)); err != nil {
		return nil, errors.Wrap(err, "failed to define console.log")
	}
	if err := vm.Set("console", console); err != nil {
		return nil, errors.Wrap(err, "failed to define console")
	}
	for _, name := range callbacks {
		err := global.Set(name, func(call goja.FunctionCall) goja.Value {
			args := make([]any, 0, len(call.Arguments))
			for _, arg := range call.Arguments {
				args = append(args, arg.Export())
			}
			report.Calls = append(report.Calls, Call{Callback: name, Args: args})
			return goja.Undefined()
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to register callback %q", name)
		}
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()
	defer close(done)

	start := time.Now()
	_, err := vm.RunString(script)
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return nil, errors.Wrapf(ctx.Err(), "script interrupted after %s", time.Since(start))
		}
		return nil, errors.Wrap(err, "script failed")
	}
	klog.V(2).Infof("jseval: script ran in %s: %d calls, %d warnings", time.Since(start), len(report.Calls), len(report.Warnings))
	return report, nil
}

func recordMessages(messages *[]string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		*messages = append(*messages, strings.Join(parts, " "))
		return goja.Undefined()
	}
}

// String returns a one-line summary of the report.
func (r *Report) String() string {
	var parts []string
	for _, c := range r.Calls {
		parts = append(parts, fmt.Sprintf("%s(%v)", c.Callback, c.Args))
	}
	for _, w := range r.Warnings {
		parts = append(parts, "warning: "+w)
	}
	if len(parts) == 0 {
		return "nothing happened"
	}
	return strings.Join(parts, "; ")
}
