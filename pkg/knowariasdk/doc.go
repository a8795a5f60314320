// Package knowariasdk is the Go client for the Knowaria platform API.
//
// The zero-dependency way to talk to the platform from Go programs and tests:
// construct a Client, sign up or log in, and the session cookie the server
// sets is carried automatically on subsequent calls.
//
//	client := knowariasdk.NewClient("http://localhost:8080")
//	user, err := client.Login(ctx, knowariasdk.LoginRequest{
//		Identifier: "ada@example.com",
//		Password:   "Engine#42x",
//	})
//
// All response bodies share the {data, message, success} envelope; the SDK
// unwraps it and surfaces failures as *APIError values.
package knowariasdk
