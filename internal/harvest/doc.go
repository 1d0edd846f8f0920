// Package harvest runs a complete harvest: curated seeds are registered
// directly, aggregator feeds are harvested, directory sites are crawled, and
// publisher feeds are harvested last. The result is the sorted domain set.
package harvest
