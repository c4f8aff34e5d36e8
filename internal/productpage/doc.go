// Package productpage discovers the main product image on a product page by
// probing a fixed priority list of metadata shapes: Open Graph, Twitter
// card, structured data, and two raw-HTML patterns specific to the CDN.
package productpage
