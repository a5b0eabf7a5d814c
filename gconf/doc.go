/*
Package gconf provides a toolset for managing an extension configuration.

Each extension keeps a single configuration object in the database, under
a key derived from the package name. It is loaded from the genesis file
and read by handlers whenever they need it.
*/
package gconf
