// Package cmd implements the harvester command line.
//
// Architecture overview:
//   - Seeds: curated news, regional and social sites are registered directly; Google News and publisher RSS
//     feeds are fetched once and every linked URL is offered to the registry; newspaper directories are crawled.
//   - Crawl: a FIFO task queue drained by a small worker pool (one worker by default) follows links that stay on
//     the page's registrable domain, up to crawler.max_depth hops from the directory seed. Every resolved link,
//     on-site or not, is offered to the registry.
//   - Fetch gate: each URL is marked visited before its single network call; failures, HTTP errors and non-text
//     bodies become empty pages rather than errors.
//   - Domains: URLs are reduced to registrable domains with the Public Suffix List, filtered by an English suffix
//     whitelist and a containment blacklist, and deduplicated in a per-run registry.
//   - Output: the sorted registry is rendered as uBlock Origin "||domain^" rules and written to disk or GCS.
//   - Plumbing: Viper loads config from file and HARVESTER_* env vars; zap provides structured logging; progress
//     events fan out to a log sink and Prometheus collectors, optionally served on metrics.addr.
package cmd
