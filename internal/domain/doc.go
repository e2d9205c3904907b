// Package domain contains the core model of the request runner: request
// descriptors, result records, batch policy and the error taxonomy.
//
// The domain is transport- and persistence-agnostic: it does not depend on
// JSON/YAML parsing, net/http or the filesystem. Infra adapters map into and
// out of these types.
package domain
