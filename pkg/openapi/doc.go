// Package openapi exposes the loader and parser contracts plus the embedded
// document describing the account-creation request. Implementations live
// under internal/openapi so kin-openapi stays hidden from consumers.
package openapi
