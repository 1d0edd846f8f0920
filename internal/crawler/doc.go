// Package crawler implements the harvesting engine: a per-run Session owning
// the visited set and domain registry, the FetchGate that guarantees each URL
// is fetched at most once, the feed harvester, and the depth-bounded crawler
// that follows same-site links and registers every domain it sees.
package crawler
