// Package database manages the MySQL connection for the content store.
package database
