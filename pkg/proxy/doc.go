// Package proxy implements request parsing, response envelope writing, and
// error classification for the insights endpoint.
//
// Every failure anywhere in the pipeline is converted into the uniform
// error envelope with a generic caller-visible message; classification
// decides the HTTP status, and full detail is logged server-side only.
package proxy
