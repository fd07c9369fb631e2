// Package services contains the server's business logic. Every operation on
// a trip or on anything below it (expenses, itinerary days, images) first
// loads the trip scoped to the calling user; a trip owned by someone else is
// reported exactly like a missing one. Comments are readable by anyone and
// writable only by their author.
package services
