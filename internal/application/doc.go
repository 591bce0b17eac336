// Package application holds the bootstrapped state of the tool: the merged
// parameters, the positional arguments and the logger. It keeps the main
// package focused on CLI parsing and orchestration.
package application
