// Package schema provides the principal schematics for all other packages. It
// defines the capabilities a traversal depends upon (directory enumeration,
// item resolution and the thumbnail service) and provides an implementation
// wrapping the operating system functions used by those capabilities.
package schema
