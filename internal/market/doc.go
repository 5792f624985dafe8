// Package market defines the Asset record returned by the CoinGecko
// /coins/markets endpoint and the client that fetches it.
//
// The client performs exactly one HTTP request per call and never retries;
// periodic re-fetching belongs to the refresh package.
package market
