// Package model defines the internal event and price snapshot types shared
// by the Ticketmaster client and the SQLite store.
package model
