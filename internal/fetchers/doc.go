// Package fetchers provides implementations of the Fetcher interface
// for the places an upstream schema tree can live: raw file hosting,
// the GitHub contents API, or a local checkout.
//
// Fetchers are registered with the FetcherFactory at startup.
package fetchers
