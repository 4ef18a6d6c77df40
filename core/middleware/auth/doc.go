// Package auth protects endpoints with a static API key check.
package auth
