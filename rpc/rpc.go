// Package rpc formats the Javascript needed to deliver the results of asynchronous
// Go operations back to a webview.
//
// The webview side registers callback functions in its global object (`window`) and
// passes their names to Go. Once the operation finishes, Go uses FormatCallback (or
// FormatCallbackResult, for operations that can fail) to build a script that calls
// the right function with the serialized result, and hands the script to whatever
// evaluates Javascript in the webview.
//
// Callback names are interpolated as is in the generated script: they are never
// escaped or validated. They must come from a trusted source, usually NewCallbackNames,
// and never from external input.
package rpc

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

//go:embed callback.js
var callbackJs string

var tmplCallbackJs = template.Must(template.New("callback").Parse(callbackJs))

// FormatCallback returns the Javascript that calls `window[name](arg)`.
//
// If the callback is no longer defined when the script runs (typically because the page
// was reloaded while the Go side was still working), the script logs a warning in the
// browser console instead of failing.
//
// Example:
//
//	js := rpc.FormatCallback("callback-function-name", rpc.String("the string response"))
//	// js contains `window["callback-function-name"]("the string response")`
func FormatCallback(name string, arg Value) string {
	data := struct {
		Name string
		Arg  string
	}{
		Name: name,
		Arg:  arg.String(),
	}
	var buf bytes.Buffer
	err := tmplCallbackJs.Execute(&buf, data)
	if err != nil {
		panic(err)
	}
	return buf.String()
}

// FormatCallbackResult formats the callback for the outcome of an operation: if `result`
// is a success, `successName` is called with the success value, otherwise `errorName`
// is called with the failure value. They are usually the names of the `resolve` and
// `reject` functions of a Javascript Promise, see NewCallbackNames.
//
// It returns an error (a *SerializationError) if the selected value can't be serialized.
func FormatCallbackResult[T, E any](result Result[T, E], successName, errorName string) (string, error) {
	name, payload := errorName, any(result.failure)
	if result.ok {
		name, payload = successName, any(result.success)
	}
	arg, err := ToValue(payload)
	if err != nil {
		return "", errors.WithMessagef(err, "formatting callback %q", name)
	}
	if klog.V(2).Enabled() {
		klog.Infof("rpc: result ok=%v delivered to callback %q (%d bytes)", result.ok, name, len(arg.raw))
	}
	return FormatCallback(name, arg), nil
}
