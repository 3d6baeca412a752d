// Package links builds purchase links for recommended books.
//
// Links are always computed locally from the book's name and author; the
// model is instructed to leave its link field blank and is not trusted to
// produce a valid URL.
package links

import (
	"net/url"
	"strings"
)

// marketplaceSearchURL is the Amazon India search endpoint. Prices in the
// prompt are requested in INR to match.
const marketplaceSearchURL = "https://www.amazon.in/s?k="

// AmazonSearchURL returns a deterministic Amazon India search URL for the
// given book. It is a pure function: the same inputs always yield the same
// URL, and it never fails.
func AmazonSearchURL(name, author string) string {
	query := name + " " + author + " book"
	// Encode spaces as %20 rather than '+' so the query term reads the
	// same way in either query or path position.
	encoded := strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
	return marketplaceSearchURL + encoded
}
