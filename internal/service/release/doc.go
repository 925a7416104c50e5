// Package release implements release discovery for the Plastic SCM downloads site.
// It fetches the per-channel listing page, parses out the newest version identifier,
// and derives the archive URLs for the installable bundles.
package release
