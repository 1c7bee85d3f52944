// Package security builds TLS client configuration for outbound transports.
//
// Remote APIs signed by a private or national CA are trusted by pointing
// CAFile at the issuing certificate; it is added on top of the system roots.
package security
