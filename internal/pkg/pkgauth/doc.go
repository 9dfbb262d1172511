// Package pkgauth resolves the caller identity from an opaque bearer credential.
//
// Credential issuance belongs to an external identity provider; this package
// only verifies a presented token and attaches the resolved Identity to the
// request context. Handlers read the identity back with GetIdentity.
package pkgauth
