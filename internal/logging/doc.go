// Package logging constructs the slog loggers used across waxcrate.
//
// Two output formats are supported: a compact console format
// ("ts LEVEL component: msg key=value ...") intended for interactive CLI
// use, and standard JSON for log files or ingestion. Loggers tag
// themselves with a "component" attribute via WithComponent; the console
// handler folds that attribute into the message prefix.
package logging
