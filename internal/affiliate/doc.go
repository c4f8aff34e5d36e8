// Package affiliate turns plain product URLs into trackable affiliate links
// via the link.generate API, harvesting candidate links from the loosely
// shaped response tree.
package affiliate
