// Package utils provides common utility functions for the race importer.
// It includes helper functions for converting the loosely typed values found
// in decoded JSON payloads (float64 numbers, strings, byte slices) into the
// concrete types the domain models expect.
package utils
