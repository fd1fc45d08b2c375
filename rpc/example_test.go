package rpc_test

import (
	"fmt"
	"strings"

	"github.com/janpfeifer/jscallback/rpc"
)

func ExampleFormatCallback() {
	js := rpc.FormatCallback("callback-function-name", rpc.String("the string response"))
	fmt.Println(strings.Contains(js, `window["callback-function-name"]("the string response")`))

	type myResponse struct {
		Value string `json:"value"`
	}
	js = rpc.FormatCallback("callback-function-name", rpc.MustValue(myResponse{Value: "some value"}))
	fmt.Println(strings.Contains(js, `window["callback-function-name"]({"value":"some value"})`))
	// Output:
	// true
	// true
}

func ExampleFormatCallbackResult() {
	js, err := rpc.FormatCallbackResult(rpc.Ok[uint8, string](5), "success_cb", "error_cb")
	if err != nil {
		panic(err)
	}
	fmt.Println(strings.Contains(js, `window["success_cb"](5)`))

	js, err = rpc.FormatCallbackResult(rpc.Err[string, string]("error message here"), "success_cb", "error_cb")
	if err != nil {
		panic(err)
	}
	fmt.Println(strings.Contains(js, `window["error_cb"]("error message here")`))
	// Output:
	// true
	// true
}

func ExampleFormatCallback_script() {
	fmt.Print(rpc.FormatCallback("cb", rpc.Bool(true)))
	// Output:
	// if (window["cb"]) {
	//   window["cb"](true)
	// } else {
	//   console.warn("[jscallback] Couldn't find callback id cb in window. This happens when the page is reloaded while Go is running an asynchronous operation.")
	// }
}
