// Package http exposes the simulator as a JSON API on a chi router.
//
// Routes:
//
//	POST /v1/run                 run inline rules or a library machine
//	POST /v1/validate            static analysis
//	POST /v1/graph               Mermaid flowchart (text/vnd.mermaid)
//	GET  /v1/machines            library ids
//	GET  /v1/machines/{id}       one library machine
//	POST /v1/machines/{id}/run   run a library machine
//	GET  /healthz, /info, /metrics
package http
