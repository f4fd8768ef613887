// Package pipeline loads the prepared table from a source, holds the current
// copy for the query layer and optionally exports it downstream.
package pipeline
