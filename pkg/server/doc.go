// Package server serves a shell over HTTP and WebSocket.
//
// Every browser tab opens one WebSocket session. A session owns its own
// router and render scheduler, so hooks always redirect the session that
// triggered them. The browser runs a small client script that forwards
// navigations and applies the frames the session sends back.
//
// # Frames
//
// Client to server:
//
//	{"type":"navigate","path":"/dashboard?tab=1"}
//
// Server to client:
//
//	{"type":"leaving","leaving":true}
//	{"type":"swap","html":"<h1>Dashboard</h1>"}
//	{"type":"meta","meta":{"title":"Dashboard"}}
//	{"type":"location","path":"/login"}
//	{"type":"scroll"}
//
// # Routes
//
//	GET  /ws        WebSocket endpoint
//	GET  /metrics   Prometheus metrics, when a gatherer is configured
//	POST /login     signs in and sets the session cookie
//	POST /logout    signs out
//	GET  /*         shell document, or a hash-routing redirect
package server
