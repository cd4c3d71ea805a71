// Package environment defines the front-end environment descriptor, its
// development and production variants, and the checks every descriptor must
// pass before it is served.
package environment
