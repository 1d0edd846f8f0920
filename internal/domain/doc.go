// Package domain turns URLs into registrable domains, decides which of them
// belong on the block list, and accumulates the accepted set for a run.
package domain
