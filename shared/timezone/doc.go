// Package timezone keeps every timestamp the service writes or compares in the
// location configured by APP_TIMEZONE (IANA names such as "UTC" or
// "Europe/Rome"). Lead times for cancellation are computed from Now, so the
// location must match the one bookings were created in.
package timezone
