// Package ticketmaster provides a rate-limited client for the Ticketmaster
// Discovery API and the mapping from its event shape to the internal model.
//
// Endpoints used:
//   - GET /events.json        search by keyword, city and country
//   - GET /events/{id}.json   event details
//
// Default base URL: https://app.ticketmaster.com/discovery/v2
package ticketmaster
