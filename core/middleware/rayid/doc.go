// Package rayid assigns a unique request identifier to every HTTP request
// for log correlation.
package rayid
