// Package campaign assembles a one-shot promotional bundle for a product:
// a discovered image, generated ad copy, a narrated vertical video, and a
// composed social post referencing the affiliate link.
package campaign
