// Package app provides the main application logic of the molotov CLI.
// It builds an instrumented session from the configuration, sends the
// planned requests across a bounded number of workers, and summarizes the run.
package app
