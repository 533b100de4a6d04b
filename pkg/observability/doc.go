/*
Package observability provides tools for monitoring the tmsim engine.

It turns engine lifecycle hooks into Prometheus metrics and structured log
lines, and chains several hook sets so they can be installed together.
*/
package observability
