// Package teamsdk holds the request/response types for the huddle HTTP API
// and a small client over them. The server handlers and the e2e tests share
// these types so the wire contract only exists in one place.
package teamsdk
