// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Fetcher: Retrieves raw schema files from the upstream tree
//   - FetcherFactory: Creates fetchers from configuration
//   - Sanitiser: Transforms raw schema text into vendorable text
//   - VendorWriter: Writes sanitised schemas under the vendor root
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, fetcher, or sanitiser package
package driven
