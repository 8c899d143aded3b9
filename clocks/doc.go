// Package clocks converts calendar times to Unix seconds in UTC.
//
// Timegm is the inverse of gmtime: it reads a broken-down time as UTC,
// normalizing out-of-range fields, without touching the TZ environment
// variable or any other process state.
package clocks
