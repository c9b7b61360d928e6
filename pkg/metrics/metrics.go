// Package metrics holds the Prometheus collectors exported by storefront binaries.
package metrics

const namespace = "storefront"
