// Package aici is a REST client for AICI controller servers.
//
// An AICI server executes uploaded WASM controllers that steer token
// generation. This package covers the client side of that protocol: upload
// a controller module, submit a completion request, and consume the
// streaming response into a per-choice result.
//
// # Usage
//
//	client, err := aici.New(aici.Config{
//	    BaseURL: "http://127.0.0.1:8080/v1/",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mod, err := client.UploadModule(ctx, "controller.wasm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := client.Complete(ctx, aici.CompletionRequest{
//	    Prompt:        "Here is a joke:",
//	    Controller:    mod.ID,
//	    ControllerArg: `{"guidance_b64":"..."}`,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Text[0])
//
// The controller argument is opaque to the client; it is consumed entirely
// by the remote controller. Requests are synchronous and never retried;
// transport failures and protocol violations are terminal for the call.
package aici
